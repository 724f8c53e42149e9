package survey

type Kind string

const (
	KindEmployee Kind = "employee"
	KindStudent  Kind = "student"
)

// Session keys filled before the record-specific fields.
const (
	keyLanguage        = "language"
	keyUserPhone       = "user_phone"
	keyInstitutionType = "institution_type"
	keySurveyType      = "survey_type"
	keySubmissionID    = "submission_id"
)

const (
	keyFullName       = "full_name"
	keyDateOfBirth    = "date_of_birth"
	keyAddress        = "address"
	keyEmail          = "email"
	keyPosition       = "position"
	keyStartDate      = "start_date"
	keyAge            = "age"
	keyDiagnosis      = "diagnosis"
	keyAttendanceDays = "attendance_days"
	keyParentName     = "parent_name"
	keyParentEmail    = "parent_email"
	keyParentPhone    = "parent_phone"
)

// Field is one question of a form: the state that asks it, the session key its answer
// is stored under and the rule the answer must pass.
type Field struct {
	State  State
	Key    string
	Prompt Text
	Retry  Text
	Valid  func(string) bool
}

// Form is the ordered field list of one record kind. Answering the last field commits.
type Form struct {
	Kind   Kind
	Fields []Field
}

var employeeForm = &Form{
	Kind: KindEmployee,
	Fields: []Field{
		{
			State:  StateEmployeeFullName,
			Key:    keyFullName,
			Prompt: Text{UZ: "To‘liq ism, familiyangiz?:", RU: "Введите ваше полное имя:"},
			Retry:  Text{UZ: "Iltimos, to‘liq ismni kiriting.", RU: "Пожалуйста, введите полное имя."},
			Valid:  IsNonEmpty,
		},
		{
			State:  StateEmployeeDateOfBirth,
			Key:    keyDateOfBirth,
			Prompt: Text{UZ: "Tug‘ilgan sanangiz? (YYYY-MM-DD):", RU: "Дата рождения? (ГГГГ-ММ-ДД):"},
			Retry:  txtRetryDate,
			Valid:  IsValidDate,
		},
		{
			State:  StateEmployeeAddress,
			Key:    keyAddress,
			Prompt: Text{UZ: "Yashash manzilingiz?:", RU: "Адрес проживания?:"},
			Retry:  txtRetryAddress,
			Valid:  IsNonEmpty,
		},
		{
			State:  StateEmployeeEmail,
			Key:    keyEmail,
			Prompt: Text{UZ: "Elektron pochtangiz?:", RU: "Электронная почта?:"},
			Retry:  txtRetryEmail,
			Valid:  IsValidEmail,
		},
		{
			State:  StateEmployeePosition,
			Key:    keyPosition,
			Prompt: Text{UZ: "Lavozimingiz va fan (agar o‘qituvchi bo‘lsangiz)?:", RU: "Ваша должность и предмет (если вы преподаватель)?:"},
			Retry:  Text{UZ: "Iltimos, lavozimni kiriting.", RU: "Пожалуйста, введите должность."},
			Valid:  IsNonEmpty,
		},
		{
			State:  StateEmployeeStartDate,
			Key:    keyStartDate,
			Prompt: Text{UZ: "Ish boshlagan sanangiz? (YYYY-MM-DD):", RU: "Дата начала работы? (ГГГГ-ММ-ДД):"},
			Retry:  txtRetryDate,
			Valid:  IsValidDate,
		},
	},
}

var studentForm = &Form{
	Kind: KindStudent,
	Fields: []Field{
		{
			State:  StateStudentFullName,
			Key:    keyFullName,
			Prompt: Text{UZ: "Bola ismi va familiyasi?:", RU: "Имя и фамилия ребёнка?:"},
			Retry:  Text{UZ: "Iltimos, bola ismi va familiyasini kiriting.", RU: "Пожалуйста, введите имя и фамилию ребёнка."},
			Valid:  IsNonEmpty,
		},
		{
			State:  StateStudentDateOfBirth,
			Key:    keyDateOfBirth,
			Prompt: Text{UZ: "Tug‘ilgan sanasi? (YYYY-MM-DD):", RU: "Дата рождения? (ГГГГ-ММ-ДД):"},
			Retry:  txtRetryDate,
			Valid:  IsValidDate,
		},
		{
			State:  StateStudentAge,
			Key:    keyAge,
			Prompt: Text{UZ: "Yoshi?:", RU: "Возраст?:"},
			Retry:  Text{UZ: "Iltimos, yoshni to‘g‘ri raqamda kiriting.", RU: "Пожалуйста, введите возраст корректным числом."},
			Valid:  IsPositiveInteger,
		},
		{
			State:  StateStudentAddress,
			Key:    keyAddress,
			Prompt: Text{UZ: "Yashash manzili?:", RU: "Адрес проживания?:"},
			Retry:  txtRetryAddress,
			Valid:  IsNonEmpty,
		},
		{
			State:  StateStudentDiagnosis,
			Key:    keyDiagnosis,
			Prompt: Text{UZ: "Diagnozi qanday?:", RU: "Какой диагноз у ребёнка?:"},
			Retry:  Text{UZ: "Iltimos, diagnozni kiriting.", RU: "Пожалуйста, введите диагноз."},
			Valid:  IsNonEmpty,
		},
		{
			State:  StateStudentAttendanceDays,
			Key:    keyAttendanceDays,
			Prompt: Text{UZ: "Haftaning qaysi kunlari qatnashadi?:", RU: "В какие дни посещает?:"},
			Retry:  Text{UZ: "Iltimos, qatnashadigan kunlarni kiriting.", RU: "Пожалуйста, введите дни посещения."},
			Valid:  IsNonEmpty,
		},
		{
			State:  StateStudentParentName,
			Key:    keyParentName,
			Prompt: Text{UZ: "Ota-ona yoki vasiy ismi?:", RU: "Имя родителя или опекуна?:"},
			Retry:  Text{UZ: "Iltimos, ota-ona yoki vasiy ismini kiriting.", RU: "Пожалуйста, введите имя родителя или опекуна."},
			Valid:  IsNonEmpty,
		},
		{
			State:  StateStudentParentEmail,
			Key:    keyParentEmail,
			Prompt: Text{UZ: "Elektron pochta?:", RU: "Электронная почта?:"},
			Retry:  txtRetryEmail,
			Valid:  IsValidEmail,
		},
		{
			State:  StateStudentParentPhone,
			Key:    keyParentPhone,
			Prompt: Text{UZ: "Telefon raqami?:", RU: "Контактный номер телефона?:"},
			Retry:  Text{UZ: "Iltimos, to‘g‘ri telefon raqamini kiriting (10-15 raqam, + bilan yoki bilansiz).", RU: "Пожалуйста, введите корректный номер телефона (10-15 цифр, с + или без)."},
			Valid:  IsValidPhone,
		},
	},
}

var forms = map[Kind]*Form{
	KindEmployee: employeeForm,
	KindStudent:  studentForm,
}

// fieldFor finds the form and field index asked in state.
func fieldFor(state State) (*Form, int, bool) {
	for _, form := range forms {
		for i, f := range form.Fields {
			if f.State == state {
				return form, i, true
			}
		}
	}

	return nil, 0, false
}

package survey

import "github.com/gratefultolord/survey_bot/internal/db"

// Text is one message in both supported languages.
type Text struct {
	UZ string
	RU string
}

// In picks the translation; anything but Russian falls back to Uzbek.
func (t Text) In(lang db.Language) string {
	if lang == db.LanguageRussian {
		return t.RU
	}
	return t.UZ
}

// Button labels are matched literally against incoming text.
const (
	LabelUzbek   = "🇺🇿 O‘zbekcha"
	LabelRussian = "🇷🇺 Русский"

	LabelSchoolKindergarten = "Bog‘cha, Maktab / Детский сад, Школа"
	LabelCenter             = "Markaz / Центр"

	LabelEmployee = "Xodim (O‘qituvchi) / Сотрудник (Преподаватель)"
	LabelStudent  = "Tarbiyalanuvchi / Воспитанник"
)

var (
	languageLabels = map[string]db.Language{
		LabelUzbek:   db.LanguageUzbek,
		LabelRussian: db.LanguageRussian,
	}
	institutionLabels = map[string]db.InstitutionType{
		LabelSchoolKindergarten: db.InstitutionSchoolKindergarten,
		LabelCenter:             db.InstitutionCenter,
	}
	kindLabels = map[string]Kind{
		LabelEmployee: KindEmployee,
		LabelStudent:  KindStudent,
	}
)

const (
	msgChooseLanguage  = "Iltimos, tilni tanlang / Пожалуйста, выберите язык:"
	msgInvalidLanguage = "Iltimos, faqat berilgan tilni tanlang / Пожалуйста, выберите только предложенный язык."
	MsgAdminOnly       = "Siz admin sifatida faqat javoblarni ko‘rishingiz mumkin / Вы, как администратор, можете только просматривать ответы."
)

var (
	txtContactButton = Text{
		UZ: "Telefon raqamni ulashish",
		RU: "Поделиться номером телефона",
	}
	txtSharePhone = Text{
		UZ: "Telefon raqamingizni ulashish uchun tugmani bosing:",
		RU: "Нажмите кнопку, чтобы поделиться номером телефона:",
	}
	txtPhoneUseButton = Text{
		UZ: "Iltimos, telefon raqamingizni ulashish uchun tugmani bosing.",
		RU: "Пожалуйста, нажмите кнопку, чтобы поделиться номером телефона.",
	}
	txtPhoneEmpty = Text{
		UZ: "Iltimos, telefon raqamingizni ulashing.",
		RU: "Пожалуйста, поделитесь номером телефона.",
	}
	txtPhoneInvalid = Text{
		UZ: "Telefon raqami noto‘g‘ri formatda (10-15 raqam kerak). Iltimos, qayta urining.",
		RU: "Номер телефона в неверном формате (нужно 10-15 цифр). Пожалуйста, попробуйте снова.",
	}
	txtChooseInstitution = Text{
		UZ: "Siz qaysi muassasadan kelyapsiz? / Из какого учреждения вы?:",
		RU: "Из какого учреждения вы? / Siz qaysi muassasadan kelyapsiz?:",
	}
	txtInvalidInstitution = Text{
		UZ: "Iltimos, faqat berilgan variantni tanlang (Bog‘cha, Maktab yoki Markaz).",
		RU: "Пожалуйста, выберите только предложенный вариант (Bog‘cha, Maktab или Markaz).",
	}
	txtChooseSurveyType = Text{
		UZ: "Kim uchun ma'lumot kiritmoqdasiz?:",
		RU: "Для кого вы вводите данные?:",
	}
	txtInvalidSurveyType = Text{
		UZ: "Iltimos, faqat berilgan variantni tanlang.",
		RU: "Пожалуйста, выберите только предложенный вариант.",
	}
	txtSaveFailed = Text{
		UZ: "Ma'lumotlarni saqlashda xato yuz berdi. Iltimos, qayta urining.",
		RU: "Произошла ошибка при сохранении данных. Пожалуйста, попробуйте снова.",
	}
	txtSessionFailed = Text{
		UZ: "Xatolik yuz berdi. Iltimos, keyinroq qayta urining.",
		RU: "Произошла ошибка. Пожалуйста, попробуйте позже.",
	}
	txtThanks = Text{
		UZ: "OK, rahmat",
		RU: "OK, спасибо",
	}
)

var (
	txtRetryDate = Text{
		UZ: "Iltimos, sanani to‘g‘ri formatda kiriting (YYYY-MM-DD).",
		RU: "Пожалуйста, введите дату в правильном формате (ГГГГ-ММ-ДД).",
	}
	txtRetryEmail = Text{
		UZ: "Iltimos, to‘g‘ri elektron pochta kiriting (masalan, example@domain.com).",
		RU: "Пожалуйста, введите корректный адрес электронной почты (например, example@domain.com).",
	}
	txtRetryAddress = Text{
		UZ: "Iltimos, manzilni kiriting.",
		RU: "Пожалуйста, введите адрес.",
	}
)

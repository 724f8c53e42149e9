package admin

import (
	"fmt"
	"strings"

	"github.com/gratefultolord/survey_bot/internal/db"
	"github.com/gratefultolord/survey_bot/internal/survey"
)

var institutionNames = map[db.InstitutionType]string{
	db.InstitutionSchoolKindergarten: "Bog‘cha / Maktab",
	db.InstitutionCenter:             "Markaz",
}

func institutionName(t db.InstitutionType) string {
	if name, ok := institutionNames[t]; ok {
		return name
	}
	return string(t)
}

// Render prints every employee record, then every student record, of one submitter.
func Render(phone string, employees []db.Employee, students []db.Student) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Foydalanuvchi: %s\n\n", phone)

	if len(employees) > 0 {
		sb.WriteString("Xodimlar / Сотрудники:\n")
		for _, e := range employees {
			fmt.Fprintf(&sb, "- Ism: %s\n", e.FullName)
			fmt.Fprintf(&sb, "  Muassasa turi: %s\n", institutionName(e.InstitutionType))
			fmt.Fprintf(&sb, "  Tug‘ilgan sana: %s\n", e.DateOfBirth.Format(survey.DateLayout))
			fmt.Fprintf(&sb, "  Manzil: %s\n", e.Address)
			fmt.Fprintf(&sb, "  Email: %s\n", e.Email)
			fmt.Fprintf(&sb, "  Lavozim va fan: %s\n", e.Position)
			fmt.Fprintf(&sb, "  Ish boshlagan sana: %s\n\n", e.StartDate.Format(survey.DateLayout))
		}
	}

	if len(students) > 0 {
		sb.WriteString("Tarbiyalanuvchilar / Воспитанники:\n")
		for _, s := range students {
			fmt.Fprintf(&sb, "- Ism: %s\n", s.FullName)
			fmt.Fprintf(&sb, "  Muassasa turi: %s\n", institutionName(s.InstitutionType))
			fmt.Fprintf(&sb, "  Tug‘ilgan sana: %s\n", s.DateOfBirth.Format(survey.DateLayout))
			fmt.Fprintf(&sb, "  Yoshi: %d\n", s.Age)
			fmt.Fprintf(&sb, "  Manzil: %s\n", s.Address)
			fmt.Fprintf(&sb, "  Diagnoz: %s\n", s.Diagnosis)
			fmt.Fprintf(&sb, "  Qatnashish kunlari: %s\n", s.AttendanceDays)
			fmt.Fprintf(&sb, "  Ota-ona/vasiy: %s\n", s.ParentName)
			fmt.Fprintf(&sb, "  Ota-ona email: %s\n", s.ParentEmail)
			fmt.Fprintf(&sb, "  Ota-ona telefoni: %s\n\n", s.ParentPhone)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

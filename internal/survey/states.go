package survey

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

type State string

const (
	StateIdle              State = "idle"
	StateChooseLanguage    State = "choose_language"
	StateAwaitPhone        State = "await_phone"
	StateChooseInstitution State = "choose_institution_type"
	StateChooseSurveyType  State = "choose_survey_type"

	StateEmployeeFullName    State = "employee.full_name"
	StateEmployeeDateOfBirth State = "employee.date_of_birth"
	StateEmployeeAddress     State = "employee.address"
	StateEmployeeEmail       State = "employee.email"
	StateEmployeePosition    State = "employee.position"
	StateEmployeeStartDate   State = "employee.start_date"

	StateStudentFullName       State = "student.full_name"
	StateStudentDateOfBirth    State = "student.date_of_birth"
	StateStudentAge            State = "student.age"
	StateStudentAddress        State = "student.address"
	StateStudentDiagnosis      State = "student.diagnosis"
	StateStudentAttendanceDays State = "student.attendance_days"
	StateStudentParentName     State = "student.parent_name"
	StateStudentParentEmail    State = "student.parent_email"
	StateStudentParentPhone    State = "student.parent_phone"
)

const (
	evStart    = "start"
	evAdvance  = "advance"
	evComplete = "complete"
	// choosing a record kind fires the event named after the kind
)

// flowStates are the shared states every survey passes before branching.
var flowStates = []State{StateChooseLanguage, StateAwaitPhone, StateChooseInstitution, StateChooseSurveyType}

var flowEvents = buildFlowEvents()

func buildFlowEvents() fsm.Events {
	events := fsm.Events{
		{Name: evStart, Src: []string{string(StateIdle)}, Dst: string(StateChooseLanguage)},
	}

	for i := 0; i < len(flowStates)-1; i++ {
		events = append(events, fsm.EventDesc{
			Name: evAdvance,
			Src:  []string{string(flowStates[i])},
			Dst:  string(flowStates[i+1]),
		})
	}

	for _, form := range forms {
		last := len(form.Fields) - 1

		events = append(events, fsm.EventDesc{
			Name: string(form.Kind),
			Src:  []string{string(StateChooseSurveyType)},
			Dst:  string(form.Fields[0].State),
		})

		for i := 0; i < last; i++ {
			events = append(events, fsm.EventDesc{
				Name: evAdvance,
				Src:  []string{string(form.Fields[i].State)},
				Dst:  string(form.Fields[i+1].State),
			})
		}

		events = append(events, fsm.EventDesc{
			Name: evComplete,
			Src:  []string{string(form.Fields[last].State)},
			Dst:  string(StateIdle),
		})
	}

	return events
}

// transition applies event to from using the survey transition table.
func transition(ctx context.Context, from State, event string) (State, error) {
	flow := fsm.NewFSM(string(from), flowEvents, fsm.Callbacks{})

	if err := flow.Event(ctx, event); err != nil {
		return from, fmt.Errorf("survey: %s from %s: %w", event, from, err)
	}

	return State(flow.Current()), nil
}

// Path lists every state a completed survey of kind visits, in order.
func Path(kind Kind) []State {
	form, ok := forms[kind]
	if !ok {
		return nil
	}

	path := append([]State{}, flowStates...)
	for _, f := range form.Fields {
		path = append(path, f.State)
	}

	return path
}

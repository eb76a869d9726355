package input

import (
	"StockDashboard/internal/model"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks for the three inputs on the terminal, pre-filled with the
// previous query. Submitting the prompt triggers one pipeline run.
type Prompter struct {
	Collector Collector
	Opts      []survey.AskOpt
}

// Ask prompts for a query, starting from prev.
func (p Prompter) Ask(prev model.Query) (model.Query, error) {
	controls := Controls(prev)
	questions := make([]*survey.Question, 0, len(controls))
	for _, c := range controls {
		q := &survey.Question{Name: c.Name}
		switch c.Kind {
		case KindSelect:
			q.Prompt = &survey.Select{Message: c.Label, Options: c.Options, Default: c.Value}
		default:
			q.Prompt = &survey.Input{Message: c.Label, Default: c.Value}
		}
		questions = append(questions, q)
	}

	var answers struct {
		Symbol   string `survey:"symbol"`
		Period   string `survey:"period"`
		Interval string `survey:"interval"`
	}
	if err := survey.Ask(questions, &answers, p.Opts...); err != nil {
		return prev, err
	}
	return p.Collector.Collect(answers.Symbol, answers.Period, answers.Interval), nil
}

// Again asks whether to run another query.
func (p Prompter) Again() (bool, error) {
	again := true
	err := survey.AskOne(&survey.Confirm{Message: "Load another query?", Default: true}, &again, p.Opts...)
	return again, err
}

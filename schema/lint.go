package schema

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Warning is a problem in a valid schema that still generates code
type Warning struct {
	Entity  string
	Message string
}

func (w Warning) String() string {
	return w.Entity + ": " + w.Message
}

// Lint reports surprises in a validated schema. None of them stop
// generation.
//
// A flag whose "-name" starts with an earlier flag's "-name" can only be
// reached through its short form: the generated parser tests flags in
// declaration order and compares only as many bytes as the earlier name has.
func Lint(app *App) []Warning {
	var warnings []Warning

	if app.Version != "" {
		if _, err := semver.NewVersion(app.Version); err != nil {
			warnings = append(warnings, Warning{
				Entity:  fmt.Sprintf("app %q", app.Name),
				Message: fmt.Sprintf("version %q is not a semantic version", app.Version),
			})
		}
	}

	for j := range app.Flags {
		later := &app.Flags[j]
		for i := 0; i < j; i++ {
			earlier := &app.Flags[i]
			if !strings.HasPrefix(later.Name, earlier.Name) {
				continue
			}
			msg := fmt.Sprintf("-%s is taken by flag %q, declared earlier", later.Name, earlier.Name)
			if later.Short.IsSet() {
				msg += fmt.Sprintf("; only -%s reaches it", later.Short)
			}
			warnings = append(warnings, Warning{
				Entity:  fmt.Sprintf("flag %q", later.Name),
				Message: msg,
			})
			break
		}
	}

	return warnings
}

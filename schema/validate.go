package schema

import (
	"github.com/teranos/cfgopt/errors"
)

// Validate checks the app for name collisions and, unless no-auto-help is
// set, appends the synthetic help flag after all user flags.
//
// Flag names, flag short forms and positional names share one namespace:
// a short 'v' collides with a flag or positional named "v". The first
// collision fails the whole schema.
func Validate(app *App) error {
	if app == nil {
		return errors.AssertionFailedf("validate: nil app")
	}

	seen := make(map[string]struct{})
	insert := func(key string) bool {
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	}

	for i := range app.Flags {
		f := &app.Flags[i]
		if !insert(f.Name) {
			return errors.NewDuplicateNameError("flag", f.Name)
		}
		if f.Short.IsSet() && !insert(f.Short.String()) {
			return errors.NewDuplicateNameError("short name of flag "+f.Name, f.Short.String())
		}
	}

	for i := range app.Positionals {
		p := &app.Positionals[i]
		if !insert(p.Name) {
			return errors.NewDuplicateNameError("positional", p.Name)
		}
	}

	if app.AutoHelp() {
		if _, taken := seen[HelpName]; taken {
			return errors.WithHint(
				errors.NewDuplicateNameError("flag", HelpName),
				"set no-auto-help = true to declare your own help flag")
		}
		if _, taken := seen[HelpShort.String()]; taken {
			return errors.WithHint(
				errors.NewDuplicateNameError("short name of flag help", HelpShort.String()),
				"set no-auto-help = true to reuse -h")
		}
		app.Flags = append(app.Flags, HelpFlag())
	}

	return nil
}

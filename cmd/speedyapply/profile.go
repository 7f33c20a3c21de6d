package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/speedyapply/internal/profile"
	"github.com/jonathan/speedyapply/internal/schemas"
	"github.com/jonathan/speedyapply/internal/store"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored profiles and autofill switches",
	}
	cmd.AddCommand(
		newProfileListCmd(a),
		newProfileShowCmd(a),
		newProfileImportCmd(a),
		newProfileActivateCmd(a),
		newProfileSwitchCmd(a, "enable", true),
		newProfileSwitchCmd(a, "disable", false),
		newProfileAICmd(a),
	)
	return cmd
}

// withState loads the state for read-only commands.
func (a *app) withState(cmd *cobra.Command, fn func(*store.State) error) error {
	st, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	state, err := st.Get(cmd.Context())
	if err != nil {
		return err
	}
	return fn(state)
}

// update applies fn to the stored state.
func (a *app) update(cmd *cobra.Command, fn func(*store.State) error) error {
	st, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return st.Update(cmd.Context(), fn)
}

func newProfileListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles; the active one is starred",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withState(cmd, func(state *store.State) error {
				a.printer.PrintProfiles(state)
				return nil
			})
		},
	}
}

func newProfileShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a profile, the active one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(cmd, func(state *store.State) error {
				var p *profile.Profile
				if len(args) == 1 {
					i := state.FindProfile(args[0])
					if i < 0 {
						return fmt.Errorf("profile %s not found", args[0])
					}
					p = &state.Profiles[i]
				} else if p = state.ActiveProfile(); p == nil {
					return fmt.Errorf("no active profile")
				}

				if asJSON {
					out, err := json.MarshalIndent(p, "", "  ")
					if err != nil {
						return fmt.Errorf("failed to marshal JSON: %w", err)
					}
					_, _ = fmt.Fprintln(a.out, string(out))
					return nil
				}
				a.printer.PrintProfile(p)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	return cmd
}

func newProfileImportCmd(a *app) *cobra.Command {
	var activate bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a profile JSON file",
		Long:  "Import a profile JSON file ({\"name\": ..., \"data\": {...}}) after schema and field validation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schemas.ValidateProfileFile(args[0])
			if err != nil {
				return err
			}
			var p profile.Profile
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("failed to parse profile JSON: %w", err)
			}
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			if err := p.Validate(); err != nil {
				return err
			}

			err = a.update(cmd, func(state *store.State) error {
				if state.FindProfile(p.ID) >= 0 {
					return fmt.Errorf("profile %s already exists", p.ID)
				}
				state.AddProfile(p)
				if activate {
					state.ActiveProfileID = p.ID
				}
				return nil
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "Imported profile %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&activate, "activate", false, "Make the imported profile active")
	return cmd
}

func newProfileActivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activate ID",
		Short: "Make a profile the one scans fill from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(state *store.State) error {
				if state.FindProfile(args[0]) < 0 {
					return fmt.Errorf("profile %s not found", args[0])
				}
				state.ActiveProfileID = args[0]
				return nil
			})
		},
	}
}

// newProfileSwitchCmd builds enable and disable: the global autofill switch,
// or one domain's switch with --domain.
func newProfileSwitchCmd(a *app, name string, on bool) *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Turn autofill %s globally or for one --domain", map[bool]string{true: "on", false: "off"}[on]),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.update(cmd, func(state *store.State) error {
				if domain != "" {
					state.SetPageEnabled(domain, on)
				} else {
					state.AutoFillEnabled = on
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "Domain to switch, e.g. boards.greenhouse.io")
	return cmd
}

func newProfileAICmd(a *app) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:       "ai on|off",
		Short:     "Switch the AI fallback for unidentified fields",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(state *store.State) error {
				state.UseOllama = args[0] == "on"
				if model != "" {
					state.OllamaModel = model
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model to use, e.g. "+store.DefaultOllamaModel)
	return cmd
}

// Package cli implements zform's command-line subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zform/internal/config"
	"github.com/zarlcorp/zform/internal/employee"
	"github.com/zarlcorp/zform/internal/form"
	"github.com/zarlcorp/zform/internal/store"
	"github.com/zarlcorp/zform/internal/validate"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ErrRejected is returned when a registration or value fails validation.
var ErrRejected = errors.New("validation failed")

// Opener opens a session for a subcommand.
type Opener func() (*Session, error)

// Options configures the root command.
type Options struct {
	Version string
	Config  config.Config
	Log     *zap.Logger

	// Open overrides how subcommands open the vault. Defaults to OpenDir
	// on the configured data directory.
	Open Opener

	// RunTUI launches the interactive interface on a session.
	RunTUI func(*Session) error
}

// NewRootCmd builds the zform command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	var askPass bool
	if opts.Open == nil {
		cfg, log := opts.Config, opts.Log
		opts.Open = func() (*Session, error) {
			pass := cfg.Passphrase
			if askPass {
				p, err := ReadPassword("vault passphrase: ", os.Stderr)
				if err != nil {
					return nil, err
				}
				pass = p
			}
			return OpenDir(cfg.DataDir, pass, log)
		}
	}

	root := &cobra.Command{
		Use:           "zform",
		Short:         "zform - employee registration",
		Long:          "zform is a terminal employee registration form with a local encrypted vault.\n\nRun without arguments to start the interactive interface.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts)
		},
	}

	root.PersistentFlags().BoolVar(&askPass, "ask-pass", false, "prompt for the vault passphrase instead of reading ZFORM_PASSPHRASE")

	root.AddCommand(
		newVersionCmd(opts.Version),
		newStatsCmd(opts.Open),
		newSettingsCmd(opts.Open),
		newProfileCmd(opts.Open),
		newRegisterCmd(opts.Open),
		newListCmd(opts.Open),
		newValidateCmd(),
	)

	return root
}

// runInteractive opens the vault, counts the visit and hands over to the
// TUI. A vault that cannot be opened degrades to an in-memory session.
func runInteractive(opts Options) error {
	if opts.RunTUI == nil {
		return errors.New("interactive mode unavailable")
	}

	sess, err := opts.Open()
	if err != nil {
		opts.Log.Warn("vault unavailable, running in memory", zap.Error(err))
		sess = Memory(err, opts.Log)
	}
	defer sess.Close()

	sess.Store.IncrementVisits()
	opts.Log.Info("session start",
		zap.Int("visits", sess.Store.Stats().TotalVisits),
		zap.Bool("degraded", sess.Degraded != nil))

	return opts.RunTUI(sess)
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zform %s\n", version)
		},
	}
}

// statsView is the JSON shape of `zform stats --json`.
type statsView struct {
	Profile      store.Profile `json:"profile"`
	Stats        store.Stats   `json:"stats"`
	SessionScore int           `json:"sessionScore"`
}

func newStatsCmd(open Opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show usage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(open, func(sess *Session) error {
				st := sess.Store
				w := cmd.OutOrStdout()
				if asJSON {
					return printJSON(w, statsView{
						Profile:      st.Profile(),
						Stats:        st.Stats(),
						SessionScore: st.SessionScore(),
					})
				}
				printStats(w, st)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newSettingsCmd(open Opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or toggle settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(open, func(sess *Session) error {
				if asJSON {
					return printJSON(cmd.OutOrStdout(), sess.Store.Settings())
				}
				printSettings(cmd.OutOrStdout(), sess.Store.Settings())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "theme",
			Short: "Toggle between light and dark theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(open, func(sess *Session) error {
					theme := sess.Store.ToggleTheme()
					fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", theme)
					return sess.Store.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "notifications",
			Short: "Toggle notifications on or off",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(open, func(sess *Session) error {
					on := sess.Store.ToggleNotifications()
					fmt.Fprintf(cmd.OutOrStdout(), "notifications: %s\n", onOff(on))
					return sess.Store.Flush()
				})
			},
		},
	)

	return cmd
}

func newProfileCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(open, func(sess *Session) error {
				p := sess.Store.Profile()
				fmt.Fprintf(cmd.OutOrStdout(), "  name:  %s\n  email: %s\n", p.Name, p.Email)
				return nil
			})
		},
	}

	var name, email string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields directly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch store.ProfilePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if patch.Name == nil && patch.Email == nil {
				return errors.New("nothing to update: pass --name or --email")
			}

			return withSession(open, func(sess *Session) error {
				sess.Store.UpdateProfile(patch)
				p := sess.Store.Profile()
				fmt.Fprintf(cmd.OutOrStdout(), "  name:  %s\n  email: %s\n", p.Name, p.Email)
				return sess.Store.Flush()
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&email, "email", "", "email address")
	cmd.AddCommand(set)

	return cmd
}

// registerFlags maps each form field to its CLI flag.
var registerFlags = []struct {
	field string
	flag  string
	usage string
}{
	{validate.FirstName, "first-name", "first name (required)"},
	{validate.LastName, "last-name", "last name (required)"},
	{validate.Email, "email", "email address (required)"},
	{validate.EmployeeID, "employee-id", "employee id, EMP-XXX"},
	{validate.Phone, "phone", "phone number, at least 10 digits"},
	{validate.Location, "location", "office location"},
}

func newRegisterCmd(open Opener) *cobra.Command {
	values := make(map[string]*string, len(registerFlags))

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an employee without the interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(open, func(sess *Session) error {
				c := form.New(sess.Store)
				for _, rf := range registerFlags {
					c.Blur(rf.field, *values[rf.field])
				}

				if !c.Submit() {
					printFieldErrors(cmd.ErrOrStderr(), c)
					return ErrRejected
				}

				e, err := sess.Registry.Add(c.Draft())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", e.Name(), e.ID)
				return sess.Store.Flush()
			})
		},
	}

	for _, rf := range registerFlags {
		values[rf.field] = cmd.Flags().String(rf.flag, "", rf.usage)
	}
	return cmd
}

func newListCmd(open Opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved registrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(open, func(sess *Session) error {
				all, err := sess.Registry.List()
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if asJSON {
					if all == nil {
						all = []employee.Employee{}
					}
					return printJSON(w, all)
				}

				if len(all) == 0 {
					fmt.Fprintln(w, "no registrations")
					return nil
				}

				for _, e := range all {
					fmt.Fprintf(w, "  %-10s %-24s %-30s %-8s %s\n",
						e.ID,
						e.Name(),
						e.Email,
						e.EmployeeID,
						e.CreatedAt.Format("2006-01-02"),
					)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <field> <value>",
		Short: "Check a single field value",
		Long:  "Check a single field value. Fields: firstName, lastName, email, employeeId, phone, location.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, value := args[0], args[1]
			if !knownField(field) {
				return fmt.Errorf("unknown field %q", field)
			}
			if msg := validate.Field(field, value); msg != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", validate.Label(field), msg)
				return ErrRejected
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func withSession(open Opener, fn func(*Session) error) error {
	sess, err := open()
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}

func printStats(w io.Writer, st *store.Store) {
	stats := st.Stats()
	fmt.Fprintf(w, "  profile:          %s\n", st.Profile().Name)
	fmt.Fprintf(w, "  total visits:     %d\n", stats.TotalVisits)
	fmt.Fprintf(w, "  projects created: %d\n", stats.ProjectsCreated)
	fmt.Fprintf(w, "  session score:    %d\n", st.SessionScore())
}

func printSettings(w io.Writer, s store.Settings) {
	fmt.Fprintf(w, "  theme:         %s\n", s.Theme)
	fmt.Fprintf(w, "  notifications: %s\n", onOff(s.Notifications))
}

func printFieldErrors(w io.Writer, c *form.Controller) {
	for _, f := range validate.Fields {
		if msg := c.Message(f); msg != "" {
			fmt.Fprintf(w, "  %s: %s\n", validate.Label(f), msg)
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func knownField(field string) bool {
	for _, f := range validate.Fields {
		if f == field {
			return true
		}
	}
	return false
}

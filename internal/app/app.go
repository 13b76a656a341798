// Package app contains the application wiring: it loads a profile,
// reconciles it against the device enumerator, hydrates the variable
// registry and drives the plugin variable extraction, decoupled from any
// specific entrypoint.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/jmriego/gremlin/internal/action"
	"github.com/jmriego/gremlin/internal/ctxlog"
	"github.com/jmriego/gremlin/internal/device"
	"github.com/jmriego/gremlin/internal/plugin"
	"github.com/jmriego/gremlin/internal/profile"
	"github.com/jmriego/gremlin/internal/vars"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	okColor     = color.New(color.FgGreen).SprintFunc()
	warnColor   = color.New(color.FgYellow).SprintFunc()
)

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	actions    *action.Registry
	registry   *vars.Registry
	enumerator device.Enumerator
}

// NewApp constructs a fully initialized App with its own isolated logger,
// the builtin action registry and an empty variable registry. The default
// enumerator sees no devices; tooling works purely from the document.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:       outW,
		logger:     newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr),
		actions:    action.DefaultRegistry(),
		registry:   vars.NewRegistry(),
		enumerator: &device.StaticEnumerator{},
	}
}

// SetEnumerator replaces the device enumerator. Primarily for tests.
func (a *App) SetEnumerator(e device.Enumerator) {
	a.enumerator = e
}

// Registry returns the variable registry. Primarily for tests.
func (a *App) Registry() *vars.Registry {
	return a.registry
}

// Run executes the configured operation.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if cfg.VariablesPath != "" {
		return a.listVariables(ctx, cfg.VariablesPath)
	}
	return a.inspectProfile(ctx, cfg)
}

// inspectProfile loads, reconciles and reports one profile document, and
// optionally rewrites it in normalized form.
func (a *App) inspectProfile(ctx context.Context, cfg *Config) error {
	p, err := profile.Load(ctx, cfg.ProfilePath, a.actions)
	if err != nil {
		return err
	}

	live, err := a.enumerator.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("enumerating devices: %w", err)
	}
	profile.Reconcile(ctx, p, live, p.ModeNames())

	HydrateRegistry(p, a.registry)

	a.printReport(ctx, p)

	if cfg.Write {
		if err := profile.Save(p, cfg.ProfilePath); err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s %s\n", okColor("rewrote"), cfg.ProfilePath)
	}
	return nil
}

func (a *App) printReport(ctx context.Context, p *profile.Profile) {
	fmt.Fprintln(a.outW, headerColor("Devices"))
	for _, d := range p.Devices() {
		fmt.Fprintf(a.outW, "  %s (%s, id %d, windows id %d)\n",
			d.Name, d.Type, d.HardwareID, d.WindowsID)
		for _, m := range d.Modes() {
			total := 0
			for _, t := range []profile.InputType{
				profile.JoystickAxis, profile.JoystickButton,
				profile.JoystickHat, profile.Keyboard,
			} {
				total += len(m.Items(t))
			}
			fmt.Fprintf(a.outW, "    mode %q: %d bound inputs\n", m.Name, total)
		}
	}

	if len(p.Imports) > 0 {
		fmt.Fprintln(a.outW, headerColor("Plugins"))
		modeNames := p.ModeNames()
		for _, path := range p.Imports {
			fmt.Fprintf(a.outW, "  %s\n", path)
			specs, err := plugin.LoadVariables(ctx, path)
			if err != nil {
				fmt.Fprintf(a.outW, "    %s %v\n", warnColor("unreadable:"), err)
				continue
			}
			plugin.SeedModeDefaults(specs, modeNames)
			for _, spec := range specs {
				a.printVariable(spec, "    ")
			}
		}
	}
}

// listVariables prints the declared variables of one plugin file.
func (a *App) listVariables(ctx context.Context, path string) error {
	specs, err := plugin.LoadVariables(ctx, path)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		fmt.Fprintf(a.outW, "%s declares no variables\n", path)
		return nil
	}
	fmt.Fprintln(a.outW, headerColor(path))
	for _, spec := range specs {
		a.printVariable(spec, "  ")
	}
	return nil
}

func (a *App) printVariable(spec *plugin.Spec, indent string) {
	line := fmt.Sprintf("%s%s (%s)", indent, spec.Label, spec.Type)
	if spec.Type.IsNumeric() {
		line += fmt.Sprintf(" range [%g, %g]", spec.Min, spec.Max)
	}
	if spec.Description != "" {
		line += ": " + spec.Description
	}
	fmt.Fprintln(a.outW, line)
}

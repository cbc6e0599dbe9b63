package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/config"
	"github.com/alnah/go-md2text/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Version  string     `json:"version"`
	Config   configInfo `json:"config"`
	Env      envInfo    `json:"environment"`
	Output   outputInfo `json:"output"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// configInfo holds config discovery results.
type configInfo struct {
	Source string `json:"source,omitempty"` // "MD2TEXT_CONFIG" or "none"
	Path   string `json:"path,omitempty"`
	Loaded bool   `json:"loaded"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS          string   `json:"os"`
	Arch        string   `json:"arch"`
	Workers     int      `json:"workers"` // auto-resolved worker count
	UnknownVars []string `json:"unknown_vars,omitempty"`
}

// outputInfo holds output directory check results.
type outputInfo struct {
	Dir      string `json:"dir,omitempty"`
	Writable bool   `json:"writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status:  "ready",
		Version: md2text.Version(),
		Env: envInfo{
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
			Workers: resolveWorkers(0),
		},
	}

	cfg := checkConfig(result)
	checkEnvVars(result)
	checkOutputDir(result, cfg)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig reports whether MD2TEXT_CONFIG names a loadable config file.
// Returns the loaded config so later checks can read directories from it.
func checkConfig(result *doctorResult) *config.Config {
	name := os.Getenv("MD2TEXT_CONFIG")
	if name == "" {
		result.Config.Source = "none"
		return nil
	}

	result.Config.Source = "MD2TEXT_CONFIG"
	result.Config.Path = name

	cfg, err := config.LoadConfig(name)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Config failed to load: %v. Fix the file or unset MD2TEXT_CONFIG", err))
		return nil
	}

	result.Config.Loaded = true
	return cfg
}

// checkEnvVars flags unrecognized MD2TEXT_* variables as warnings.
func checkEnvVars(result *doctorResult) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "MD2TEXT_") {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			result.Env.UnknownVars = append(result.Env.UnknownVars, name)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Unknown environment variable %s (typo?)", name))
		}
	}
}

// checkOutputDir verifies that the configured output directory, if any,
// accepts new files. A missing directory is fine: batch conversion
// creates it.
func checkOutputDir(result *doctorResult, cfg *config.Config) {
	dir := os.Getenv("MD2TEXT_OUTPUT_DIR")
	if dir == "" && cfg != nil {
		dir = cfg.Output.DefaultDir
	}
	if dir == "" {
		return
	}

	result.Output.Dir = dir

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		result.Output.Writable = true
	case err != nil:
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory not accessible: %v", err))
	case !info.IsDir():
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output path is not a directory: %s", dir))
	default:
		if err := fileutil.CheckWritable(dir); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Output directory not writable: %s. Fix permissions or choose another directory", dir))
		} else {
			result.Output.Writable = true
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2text doctor")
	fmt.Fprintln(w)

	// Version section
	fmt.Fprintln(w, "Version")
	fmt.Fprintf(w, "  [OK] md2text %s\n", r.Version)
	fmt.Fprintln(w)

	// Config section
	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Source == "none":
		fmt.Fprintln(w, "  [OK] None set (engine defaults apply; use --config or MD2TEXT_CONFIG)")
	case r.Config.Loaded:
		fmt.Fprintf(w, "  [OK] Loaded %s (via %s)\n", r.Config.Path, r.Config.Source)
	default:
		fmt.Fprintf(w, "  [ERROR] Failed to load %s\n", r.Config.Path)
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Workers: %d (auto)\n", r.Env.Workers)
	if len(r.Env.UnknownVars) > 0 {
		fmt.Fprintf(w, "  [WARN] Unknown MD2TEXT_* variables: %s\n", strings.Join(r.Env.UnknownVars, ", "))
	}
	fmt.Fprintln(w)

	// Output section
	fmt.Fprintln(w, "Output")
	switch {
	case r.Output.Dir == "":
		fmt.Fprintln(w, "  [OK] No default directory (text lands next to each input)")
	case r.Output.Writable:
		fmt.Fprintf(w, "  [OK] Directory: %s\n", r.Output.Dir)
	default:
		fmt.Fprintf(w, "  [ERROR] Directory: %s\n", r.Output.Dir)
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ComedicChimera/olive"
	"github.com/SeppDev/eclipse-sub000/depm"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/pterm/pterm"
)

// buildOptions are the options shared by the `run` and `build` subcommands.
type buildOptions struct {
	rootPath      string
	logLevel      int
	disableStatus bool
	release       bool
	emitMIR       bool
}

// RunCompiler is the main entry point for the `eclipse` CLI utility.  It
// returns the exit code of the process.
func RunCompiler() int {
	// set up the argument parser and all its subcommands and arguments
	cli := olive.NewCLI("eclipse", "eclipse compiles Eclipse projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	runCmd := cli.AddSubcommand("run", "build and run a project", true)
	runCmd.AddPrimaryArg("project-path", "the path to the project directory", false)
	runCmd.AddStringArg("project-dir", "pd", "the path to the project directory", false)
	runCmd.AddFlag("disable-status", "ds", "disable the status indicator")
	runCmd.AddFlag("release", "r", "build with the release flags")
	runCmd.AddFlag("emit-mir", "em", "write the MIR of the project to the build directory")

	buildCmd := cli.AddSubcommand("build", "build a project", true)
	buildCmd.AddPrimaryArg("project-path", "the path to the project directory", false)
	buildCmd.AddStringArg("project-dir", "pd", "the path to the project directory", false)
	buildCmd.AddFlag("disable-status", "ds", "disable the status indicator")
	buildCmd.AddFlag("release", "r", "build with the release flags")
	buildCmd.AddFlag("emit-mir", "em", "write the MIR of the project to the build directory")

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}

	// process the inputed command line
	logLevel := result.Arguments["loglevel"].(string)
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "run":
		return execBuild(readBuildOptions(subResult, logLevel), true)
	case "build":
		return execBuild(readBuildOptions(subResult, logLevel), false)
	}

	return 0
}

// readBuildOptions extracts the build options from a parsed subcommand.
func readBuildOptions(result *olive.ArgParseResult, logLevel string) buildOptions {
	opts := buildOptions{
		rootPath:      ".",
		logLevel:      report.LogLevelNames[logLevel],
		disableStatus: result.HasFlag("disable-status"),
		release:       result.HasFlag("release"),
		emitMIR:       result.HasFlag("emit-mir"),
	}

	if primaryArg, ok := result.PrimaryArg(); ok {
		opts.rootPath = primaryArg
	}

	if projectDir, ok := result.Arguments["project-dir"]; ok {
		opts.rootPath = projectDir.(string)
	}

	return opts
}

// execBuild builds the project and, if `run` is set, runs the executable.  It
// handles all errors and returns the exit code of the process.
func execBuild(opts buildOptions, run bool) int {
	if opts.logLevel == report.LogLevelSilent {
		pterm.DisableOutput()
	}

	rootPath, err := filepath.Abs(opts.rootPath)
	if err != nil {
		pterm.Error.Println(fmt.Sprintf("invalid project directory: %s", err))
		return 1
	}

	config, err := LoadProjectConfig(rootPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}

	rep := report.NewReporter(opts.logLevel)
	status := StartStatus(!opts.disableStatus && opts.logLevel != report.LogLevelSilent)

	c := NewCompiler(rootPath, config, rep, depm.NewDiskResolver(rootPath)).WithStatus(status)

	exePath, err := buildProject(c, opts)
	status.Stop()

	if err != nil {
		rep.StdError("", err)
	}

	rep.Flush(os.Stderr)
	rep.Summarize(os.Stderr)

	if rep.AnyErrors() {
		return 1
	}

	if !run {
		return 0
	}

	exitCode, err := runExecutable(exePath)
	if err != nil {
		pterm.Error.Println(err.Error())
	}

	return exitCode
}

// buildProject compiles the project, writes its LLVM module, and links it.
// It returns the path to the executable.  Compilation errors are left in the
// compiler's reporter and yield an empty path.
func buildProject(c *Compiler, opts buildOptions) (string, error) {
	module, ok := c.Generate()
	if !ok {
		return "", nil
	}

	llPath, err := c.WriteModule(module)
	if err != nil {
		return "", err
	}

	if opts.emitMIR {
		if _, err := c.WriteMIR(); err != nil {
			return "", err
		}
	}

	return c.Link(llPath, opts.release, runtime.GOOS)
}

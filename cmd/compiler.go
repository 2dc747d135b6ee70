package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SeppDev/eclipse-sub000/codegen"
	"github.com/SeppDev/eclipse-sub000/common"
	"github.com/SeppDev/eclipse-sub000/depm"
	"github.com/SeppDev/eclipse-sub000/hlir"
	"github.com/SeppDev/eclipse-sub000/lower"
	"github.com/SeppDev/eclipse-sub000/mir"
	"github.com/SeppDev/eclipse-sub000/report"
	"github.com/SeppDev/eclipse-sub000/walk"
	"github.com/pterm/pterm"
)

// Names of the files written to the build directory.
const (
	LLFileName  = "build.ll"
	MIRFileName = "build.mir"
)

// Compiler drives the compilation of a single project: it runs each stage in
// turn and stops after the first stage which reports errors.
type Compiler struct {
	rootPath string
	config   *ProjectConfig

	ctx      *common.CompileContext
	resolver depm.FileResolver

	// The target code is generated for.  If it is not supported, `targetErr`
	// says why and compilation fails before any stage runs.
	target    codegen.Target
	targetErr error

	status *Status
	logger *pterm.Logger

	// The MIR of the last successful compilation.
	fns []*mir.Function
}

// NewCompiler creates a new compiler for the project rooted at `rootPath`.
// Source files are read through `resolver`.
func NewCompiler(rootPath string, config *ProjectConfig, rep *report.Reporter, resolver depm.FileResolver) *Compiler {
	c := &Compiler{
		rootPath: rootPath,
		config:   config,
		ctx:      common.NewCompileContext(rep, config.Editor.TabSize),
		resolver: resolver,
		status:   &Status{},
		logger:   newLogger(rep.LogLevel()),
	}

	c.target, c.targetErr = codegen.HostTarget()
	return c
}

// newLogger creates the driver's logger for a log level.
func newLogger(logLevel int) *pterm.Logger {
	switch logLevel {
	case report.LogLevelVerbose:
		return pterm.DefaultLogger.WithLevel(pterm.LogLevelDebug)
	case report.LogLevelWarn:
		return pterm.DefaultLogger.WithLevel(pterm.LogLevelWarn)
	default:
		return pterm.DefaultLogger.WithLevel(pterm.LogLevelError)
	}
}

// WithStatus sets the status indicator the compiler reports its stages to.
func (c *Compiler) WithStatus(status *Status) *Compiler {
	c.status = status
	return c
}

// WithTarget sets the target the compiler generates code for from a Go
// architecture and operating system pair.
func (c *Compiler) WithTarget(goarch, goos string) *Compiler {
	c.target, c.targetErr = codegen.NewTarget(goarch, goos)
	return c
}

// Generate runs every stage of compilation and returns the textual LLVM
// module.  If any stage reports errors, the remaining stages are skipped and
// the returned flag is false.  Internal compiler errors are reported as
// errors.
func (c *Compiler) Generate() (module string, ok bool) {
	defer func() {
		if x := recover(); x != nil {
			ice, isICE := x.(*report.ICE)
			if !isICE {
				panic(x)
			}

			c.ctx.Reporter.StdError("", ice)
			module, ok = "", false
		}
	}()

	if c.targetErr != nil {
		c.ctx.Reporter.StdError("", c.targetErr)
		return "", false
	}

	c.logger.Info("compiling", c.logger.Args("project", c.rootPath, "target", c.target.Triple()))

	var set *depm.ModuleSet
	if !c.runStage("Resolving modules", func() {
		set = depm.ResolveModules(c.ctx, c.resolver, common.EntryPath())
		c.ctx.Reporter.SetSourceLookup(set.Lookup, c.ctx.TabSize)
	}) {
		return "", false
	}

	var table *depm.GlobalTable
	if !c.runStage("Collecting definitions", func() {
		table = depm.Collect(c.ctx, set)
	}) {
		return "", false
	}

	var hfns []*hlir.Function
	if !c.runStage("Analyzing", func() {
		hfns = walk.Analyze(c.ctx, table)
	}) {
		return "", false
	}

	var fns []*mir.Function
	if !c.runStage("Lowering", func() {
		fns = lower.LowerAll(c.ctx, hfns)
	}) {
		return "", false
	}

	c.fns = fns

	c.runStage("Generating LLVM", func() {
		module = codegen.Generate(c.target, fns)
	})

	return module, true
}

// runStage runs a single stage of compilation and returns whether it
// completed without errors.
func (c *Compiler) runStage(name string, stage func()) bool {
	c.status.Send(name)

	start := time.Now()
	stage()

	c.logger.Debug(name, c.logger.Args(
		"elapsed", time.Since(start),
		"errors", c.ctx.Reporter.ErrorCount(),
		"warnings", c.ctx.Reporter.WarningCount(),
	))

	return !c.ctx.Reporter.AnyErrors()
}

// -----------------------------------------------------------------------------

// BuildDir returns the absolute path of the project's build directory.
func (c *Compiler) BuildDir() string {
	return filepath.Join(c.rootPath, c.config.Build.Output)
}

// WriteModule writes the generated LLVM module to the build directory and
// returns its path.
func (c *Compiler) WriteModule(module string) (string, error) {
	buildDir := c.BuildDir()
	if err := os.MkdirAll(buildDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create build directory: %w", err)
	}

	llPath := filepath.Join(buildDir, LLFileName)
	if err := os.WriteFile(llPath, []byte(module), 0o644); err != nil {
		return "", fmt.Errorf("failed to write LLVM module: %w", err)
	}

	c.logger.Debug("wrote LLVM module", c.logger.Args("path", llPath, "bytes", len(module)))
	return llPath, nil
}

// WriteMIR writes the textual dump of the MIR of the last successful
// compilation to the build directory and returns its path.
func (c *Compiler) WriteMIR() (string, error) {
	sb := &strings.Builder{}
	for i, fn := range c.fns {
		if i > 0 {
			sb.WriteRune('\n')
		}

		sb.WriteString(fn.Repr())
	}

	mirPath := filepath.Join(c.BuildDir(), MIRFileName)
	if err := os.WriteFile(mirPath, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write MIR: %w", err)
	}

	return mirPath, nil
}

// Link compiles and links the LLVM module at `llPath` into the project's
// executable and returns the executable's path.
func (c *Compiler) Link(llPath string, release bool, goos string) (string, error) {
	c.status.Send("Linking")

	exePath := filepath.Join(c.BuildDir(), c.config.ExecutableName(goos))
	flags := c.config.CCFlags(release)

	c.logger.Debug("linking", c.logger.Args("cc", c.config.Build.CC, "flags", flags, "output", exePath))

	if err := link(c.config.Build.CC, llPath, exePath, flags); err != nil {
		return "", err
	}

	return exePath, nil
}

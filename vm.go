package ptscheme

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

//go:embed prelude.scm
var preludeSource string

var (
	preludeOnce  sync.Once
	preludeForms []Value
	preludeErr   error
)

// parsedPrelude reads the embedded prelude once per process.
func parsedPrelude() ([]Value, error) {
	preludeOnce.Do(func() {
		preludeForms, preludeErr = ReadString(preludeSource)
		if preludeErr == nil {
			for _, form := range preludeForms {
				if e, ok := form.(*Error); ok {
					preludeErr = fmt.Errorf("prelude: %w", e)
					break
				}
			}
		}
	})
	return preludeForms, preludeErr
}

// ImportFn installs the bindings of a module into a VM.
type ImportFn func(vm *VM) error

type module struct {
	name     string
	importFn ImportFn
}

var (
	modulesMu sync.Mutex
	modules   []module
)

// RegisterModule adds a module that every subsequently created VM imports
// into its global environment, in registration order. Registering a name
// twice replaces the earlier module.
func RegisterModule(name string, importFn ImportFn) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	for i := range modules {
		if modules[i].name == name {
			modules[i].importFn = importFn
			return
		}
	}
	modules = append(modules, module{name, importFn})
}

func registeredModules() []module {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	return append([]module(nil), modules...)
}

// VM owns a global environment and the state of one evaluation thread. A VM
// must not be used from several goroutines at once.
type VM struct {
	global   *Environment
	config   *Config
	logger   *log.Logger
	out      io.Writer
	depth    int
	maxDepth int
}

type Option func(*VM)

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(vm *VM) { vm.config = cfg }
}

// WithLogger sets the logger used for module imports, prelude loading and
// load failures.
func WithLogger(logger *log.Logger) Option {
	return func(vm *VM) { vm.logger = logger }
}

// WithOutput sets the writer used by display, write and newline.
func WithOutput(w io.Writer) Option {
	return func(vm *VM) { vm.out = w }
}

// NewVM creates a VM whose global environment holds the primitives, the
// registered modules, the prelude (unless disabled) and the configured
// preload files.
func NewVM(opts ...Option) (*VM, error) {
	vm := &VM{
		config: DefaultConfig(),
		logger: log.New(io.Discard, "", 0),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(vm)
	}
	if err := vm.config.Validate(); err != nil {
		return nil, err
	}
	vm.maxDepth = vm.config.Eval.MaxDepth
	vm.global = NewEnvironment()
	DefinePrimitives(vm.global)
	for _, m := range registeredModules() {
		if err := m.importFn(vm); err != nil {
			return nil, fmt.Errorf("import module %s: %w", m.name, err)
		}
		vm.logger.Printf("imported module %s", m.name)
	}
	if vm.config.Eval.Prelude {
		if err := vm.loadPrelude(); err != nil {
			return nil, err
		}
	}
	for _, path := range vm.config.Eval.Preload {
		if err := vm.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return vm, nil
}

func (vm *VM) loadPrelude() error {
	forms, err := parsedPrelude()
	if err != nil {
		return err
	}
	for _, form := range forms {
		v, err := vm.Eval(form, vm.global)
		if err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
		if e, ok := v.(*Error); ok {
			return fmt.Errorf("prelude: %w", e)
		}
	}
	vm.logger.Printf("loaded prelude (%d forms)", len(forms))
	return nil
}

// Global returns the global environment.
func (vm *VM) Global() *Environment {
	return vm.global
}

func (vm *VM) Config() *Config {
	return vm.config
}

func (vm *VM) SetLogger(logger *log.Logger) {
	vm.logger = logger
}

// Define binds name in the global environment.
func (vm *VM) Define(name string, v Value) {
	vm.global.DefineVariable(Intern(name), v)
}

// DefinePrimitive binds a native procedure in the global environment.
func (vm *VM) DefinePrimitive(name string, minArgs, maxArgs int, fn PrimitiveFn) {
	vm.Define(name, &Primitive{
		Name:    name,
		MinArgs: minArgs,
		MaxArgs: maxArgs,
		Fn:      fn,
	})
}

// NewReader returns a reader configured from the VM's reader settings.
func (vm *VM) NewReader(r io.Reader) *Reader {
	return NewReader(r, vm.readerOptions()...)
}

func (vm *VM) readerOptions() []ReaderOption {
	rc := vm.config.Reader
	return []ReaderOption{
		WithMaxStringLength(rc.MaxStringLength),
		WithMaxSymbolLength(rc.MaxSymbolLength),
		WithFloats(rc.Floats),
	}
}

// EvalGlobal evaluates expr in the global environment. The depth counter is
// reset first, so a previous hard error cannot leak into this evaluation.
func (vm *VM) EvalGlobal(expr Value) (Value, error) {
	vm.depth = 0
	return vm.Eval(expr, vm.global)
}

// Load reads and evaluates every datum from r in the global environment and
// returns the value of the last one. Loading stops at the first Error, soft
// or hard: a soft Error is returned as the result, a hard one as err.
func (vm *VM) Load(r io.Reader) (Value, error) {
	rd := vm.NewReader(r)
	var result Value = OK
	for {
		form, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		if IsError(form) {
			return form, nil
		}
		result, err = vm.EvalGlobal(form)
		if err != nil {
			vm.logger.Printf("evaluation of %s failed: %v", Repr(form), err)
			return nil, err
		}
		if IsError(result) {
			return result, nil
		}
	}
}

func (vm *VM) LoadString(s string) (Value, error) {
	return vm.Load(strings.NewReader(s))
}

// LoadFile loads the file at path. A soft Error at top level is reported as
// an error here, since there is no caller left to inspect it.
func (vm *VM) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	result, err := vm.Load(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if e, ok := result.(*Error); ok {
		return fmt.Errorf("%s: %w", path, e)
	}
	vm.logger.Printf("loaded %s", path)
	return nil
}

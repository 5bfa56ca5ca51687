package schemagen

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog/log"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
)

// draft07 is used because github.com/santhosh-tekuri/jsonschema/v6 validates
// against it without metaschema errors.
const draft07 = "http://json-schema.org/draft-07/schema#"

// Config configures a Generator.
type Config struct {
	// Path is the Go source file declaring the types.
	Path string
	// Type is the type the generator is created for. Optional; when set it
	// must be declared in Path.
	Type string
	// Fs is the filesystem Path is read from. Defaults to the OS filesystem.
	Fs afero.Fs
}

// Generator creates JSON schemas for types declared in a single Go source file.
type Generator struct {
	cfg      Config
	pkgName  string
	decls    map[string]bool
	comments map[string]string
}

// NewGenerator parses the source file named by cfg.Path.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}

	src, err := afero.ReadFile(cfg.Fs, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	file, err := parser.ParseFile(token.NewFileSet(), cfg.Path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	g := &Generator{
		cfg:      cfg,
		pkgName:  file.Name.Name,
		decls:    make(map[string]bool),
		comments: make(map[string]string),
	}
	collect(file, g.decls, g.comments)

	if cfg.Type != "" && !g.decls[cfg.Type] {
		return nil, fmt.Errorf("%w: %s in %s", ErrTypeNotFound, cfg.Type, cfg.Path)
	}

	return g, nil
}

// collect records exported type declarations and their doc comments, keyed
// the way jsonschema.Reflector looks them up (without the package path).
func collect(file *ast.File, decls map[string]bool, comments map[string]string) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ast.IsExported(ts.Name.Name) {
				continue
			}
			name := ts.Name.Name
			decls[name] = true

			doc := ts.Doc.Text()
			if doc == "" && len(gen.Specs) == 1 {
				doc = gen.Doc.Text()
			}
			if doc = strings.TrimSpace(doc); doc != "" {
				comments[name] = doc
			}

			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			for _, field := range st.Fields.List {
				txt := field.Doc.Text()
				if txt == "" {
					txt = field.Comment.Text()
				}
				if txt = strings.TrimSpace(txt); txt == "" {
					continue
				}
				for _, n := range field.Names {
					if ast.IsExported(n.Name) {
						comments[name+"."+n.Name] = txt
					}
				}
			}
		}
	}
}

// CreateSchema reflects the named type into a draft-07 JSON schema.
func (g *Generator) CreateSchema(name string) (*jsonschema.Schema, error) {
	if !g.decls[name] {
		return nil, fmt.Errorf("%w: %s in %s", ErrTypeNotFound, name, g.cfg.Path)
	}

	t, err := lookupType(name, g.pkgName)
	if err != nil {
		return nil, err
	}

	commentMap := make(map[string]string, len(g.comments))
	g.relatedComments(t, commentMap)
	for k, v := range g.comments {
		commentMap[t.PkgPath()+"."+k] = v
	}

	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            false,
		CommentMap:                commentMap,
	}

	schema := r.ReflectFromType(t)
	schema.Version = draft07

	if err := checkSchema(name, schema); err != nil {
		return nil, err
	}

	return schema, nil
}

// relatedComments adds the doc comments of packages t refers to. Only
// packages of the same module as the input file are read, from the directory
// matching their import path.
func (g *Generator) relatedComments(t reflect.Type, commentMap map[string]string) {
	root, prefix := moduleRoot(filepath.Dir(g.cfg.Path), t.PkgPath())

	for _, pkg := range referencedPackages(t) {
		if pkg == t.PkgPath() || !strings.HasPrefix(pkg, prefix+"/") {
			continue
		}

		dir := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(pkg, prefix+"/")))
		comments, err := packageComments(g.cfg.Fs, dir)
		if err != nil {
			log.Debug().Err(err).
				Str("package", pkg).
				Str("dir", dir).
				Msg("Skipping comments of referenced package")
			continue
		}
		for k, v := range comments {
			commentMap[pkg+"."+k] = v
		}
	}
}

// moduleRoot strips the trailing path elements dir and pkgPath have in
// common. Any import path under the returned prefix lives in the same
// directory below the returned root.
func moduleRoot(dir, pkgPath string) (string, string) {
	dir = filepath.Clean(dir)
	for filepath.Base(dir) == path.Base(pkgPath) {
		parentDir, parentPkg := filepath.Dir(dir), path.Dir(pkgPath)
		if parentDir == dir || parentPkg == "." || parentPkg == "/" {
			break
		}
		dir, pkgPath = parentDir, parentPkg
	}
	return dir, pkgPath
}

// referencedPackages lists the import paths of the named types reachable
// from t through fields and element types.
func referencedPackages(t reflect.Type) []string {
	seen := make(map[reflect.Type]bool)
	pkgs := make(map[string]bool)

	var walk func(reflect.Type)
	walk = func(t reflect.Type) {
		if seen[t] {
			return
		}
		seen[t] = true
		if t.PkgPath() != "" {
			pkgs[t.PkgPath()] = true
		}

		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			walk(t.Elem())
		case reflect.Map:
			walk(t.Key())
			walk(t.Elem())
		case reflect.Struct:
			for i := 0; i < t.NumField(); i++ {
				walk(t.Field(i).Type)
			}
		}
	}
	walk(t)

	out := make([]string, 0, len(pkgs))
	for p := range pkgs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// packageComments collects the doc comments of every non-test Go file in dir.
func packageComments(fs afero.Fs, dir string) (map[string]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	decls := make(map[string]bool)
	comments := make(map[string]string)
	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		p := filepath.Join(dir, name)
		src, err := afero.ReadFile(fs, p)
		if err != nil {
			return nil, err
		}
		file, err := parser.ParseFile(fset, p, src, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		collect(file, decls, comments)
	}

	return comments, nil
}

// checkSchema compiles the document against its metaschema.
func checkSchema(name string, schema *jsonschema.Schema) error {
	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrInvalidSchema, err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", ErrInvalidSchema, err)
	}

	url := "mem://schemagen/" + name + ".json"
	compiler := jschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return fmt.Errorf("%w: add resource: %v", ErrInvalidSchema, err)
	}
	if _, err := compiler.Compile(url); err != nil {
		return fmt.Errorf("%w: compile: %v", ErrInvalidSchema, err)
	}

	return nil
}

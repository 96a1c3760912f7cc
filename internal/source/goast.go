package source

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/routedoc/routedoc/internal/annotations"
)

// GoProvider builds the source model from parsed Go files. Members are
// methods whose doc comment carries a mapping directive; a member's
// enclosing scope is its receiver type's declaration, and a type's
// enclosing scope is its package (package doc comments may carry mapping
// directives too).
type GoProvider struct {
	module  string // module path used to qualify package-local type names
	rootDir string // module root, package paths are derived relative to it

	fset   *token.FileSet
	parser *annotations.Parser

	packages map[string]*packageScope   // package path → scope
	types    map[string]*typeDecl       // type FQN → declaration
	declared map[string]map[string]bool // package path → declared type names
	members  []*memberScope
}

// NewGoProvider creates a provider rooted at the directory containing
// go.mod. The module path qualifies every package-local type name.
func NewGoProvider(module, rootDir string) *GoProvider {
	return &GoProvider{
		module:   module,
		rootDir:  rootDir,
		fset:     token.NewFileSet(),
		parser:   annotations.NewParser(),
		packages: make(map[string]*packageScope),
		types:    make(map[string]*typeDecl),
		declared: make(map[string]map[string]bool),
	}
}

// fileContext carries the per-file information needed to qualify type
// names: the package import path and the file's import aliases.
type fileContext struct {
	pkgPath string
	imports map[string]string // alias → import path
}

type parsedFile struct {
	path string
	file *ast.File
	ctx  *fileContext
}

// Load parses every non-test Go file in the given directories and builds
// the scope model. Directive syntax errors are fatal and abort the load.
func (p *GoProvider) Load(dirs []string) error {
	var files []parsedFile

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		var names []string
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		pkgPath := p.packagePath(dir)
		for _, name := range names {
			path := filepath.Join(dir, name)
			file, err := parser.ParseFile(p.fset, path, nil, parser.ParseComments)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			files = append(files, parsedFile{
				path: path,
				file: file,
				ctx:  &fileContext{pkgPath: pkgPath, imports: importMap(file)},
			})
		}
	}

	// Declarations first, so field types and embedded ancestors resolve
	// across files and packages before any member is examined.
	for _, pf := range files {
		if err := p.registerDeclarations(pf); err != nil {
			return err
		}
	}
	for _, key := range sortedTypeKeys(p.types) {
		p.finalizeType(p.types[key])
	}
	for _, pf := range files {
		if err := p.registerMembers(pf); err != nil {
			return err
		}
	}

	return nil
}

// AnnotatedMembers returns every member carrying a recognized mapping
// annotation, in (directory, file, declaration) order.
func (p *GoProvider) AnnotatedMembers() []Member {
	members := make([]Member, len(p.members))
	for i, m := range p.members {
		members[i] = m
	}
	return members
}

// PackageCount returns the number of packages seen during loading.
func (p *GoProvider) PackageCount() int {
	return len(p.packages)
}

// packagePath derives the import path of a directory from the module root.
func (p *GoProvider) packagePath(dir string) string {
	rel, err := filepath.Rel(p.rootDir, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p.module + "/" + filepath.Base(dir)
	}
	if rel == "." {
		return p.module
	}
	return p.module + "/" + filepath.ToSlash(rel)
}

// registerDeclarations records the package scope, declared type names and
// struct declarations of one file.
func (p *GoProvider) registerDeclarations(pf parsedFile) error {
	pkg := p.packageScopeFor(pf.ctx.pkgPath)

	if pf.file.Doc != nil {
		mappings, _, _, err := p.parseDocDirectives(pf.file.Doc)
		if err != nil {
			return err
		}
		pkg.mappings = append(pkg.mappings, mappings...)
		if hasDeprecatedLine(pf.file.Doc) {
			pkg.deprecated = true
		}
	}

	for _, decl := range pf.file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			p.declaredNamesFor(pf.ctx.pkgPath)[typeSpec.Name.Name] = true

			structType, isStruct := typeSpec.Type.(*ast.StructType)
			fqn := pf.ctx.pkgPath + "." + typeSpec.Name.Name

			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}
			mappings, _, _, err := p.parseDocDirectives(doc)
			if err != nil {
				return err
			}

			decl := &typeDecl{
				scopeData: scopeData{
					name:       fqn,
					mappings:   mappings,
					deprecated: hasDeprecatedLine(doc),
					enclosing:  pkg,
				},
				provider: p,
				fqn:      fqn,
				ctx:      pf.ctx,
			}
			if isStruct {
				decl.structType = structType
			}
			p.types[fqn] = decl
		}
	}

	return nil
}

// finalizeType computes a struct declaration's own field list and its
// embedded-ancestor key once all declarations are known.
func (p *GoProvider) finalizeType(decl *typeDecl) {
	if decl.structType == nil {
		return
	}
	for _, field := range decl.structType.Fields.List {
		if len(field.Names) == 0 {
			// The first embedded field acts as the superclass; further
			// embeds are ignored, matching single-inheritance semantics.
			if decl.superKey == "" {
				decl.superKey = p.resolveKey(field.Type, decl.ctx)
			}
			continue
		}
		for _, name := range field.Names {
			decl.fields = append(decl.fields, Field{
				Name:    name.Name,
				TypeFQN: p.typeName(field.Type, decl.ctx),
			})
		}
	}
}

// registerMembers records every method of the file whose doc comment
// carries at least one mapping directive.
func (p *GoProvider) registerMembers(pf parsedFile) error {
	for _, decl := range pf.file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 || fn.Doc == nil {
			continue
		}

		mappings, queries, bodies, err := p.parseDocDirectives(fn.Doc)
		if err != nil {
			return err
		}
		if len(mappings) == 0 {
			continue
		}

		recvName := receiverTypeName(fn.Recv.List[0].Type)
		if recvName == "" {
			continue
		}
		declaring := pf.ctx.pkgPath + "." + recvName

		member := &memberScope{
			scopeData: scopeData{
				name:       recvName + "." + fn.Name.Name,
				mappings:   mappings,
				deprecated: hasDeprecatedLine(fn.Doc),
				enclosing:  p.typeScopeFor(declaring, pf.ctx),
			},
			provider:  p,
			declaring: declaring,
			queries:   queries,
			bodies:    bodies,
			params:    p.formalParams(fn, pf.ctx),
			retKey:    p.returnTypeKey(fn, pf.ctx),
		}
		p.members = append(p.members, member)
	}

	return nil
}

// parseDocDirectives extracts every route:: directive from a doc comment.
func (p *GoProvider) parseDocDirectives(doc *ast.CommentGroup) ([]*annotations.Mapping, []*annotations.QueryMarker, []*annotations.BodyMarker, error) {
	if doc == nil {
		return nil, nil, nil, nil
	}

	var mappings []*annotations.Mapping
	var queries []*annotations.QueryMarker
	var bodies []*annotations.BodyMarker

	for _, comment := range doc.List {
		pos := p.fset.Position(comment.Pos())
		loc := annotations.SourceLocation{
			File:   pos.Filename,
			Line:   pos.Line,
			Column: pos.Column,
		}

		directive, err := p.parser.ParseComment(comment.Text, loc)
		if err != nil {
			return nil, nil, nil, err
		}
		switch d := directive.(type) {
		case *annotations.Mapping:
			mappings = append(mappings, d)
		case *annotations.QueryMarker:
			queries = append(queries, d)
		case *annotations.BodyMarker:
			bodies = append(bodies, d)
		}
	}

	return mappings, queries, bodies, nil
}

// formalParams extracts the member's formal parameters in declaration order.
func (p *GoProvider) formalParams(fn *ast.FuncDecl, ctx *fileContext) []FormalParam {
	var params []FormalParam
	if fn.Type.Params == nil {
		return params
	}
	for _, field := range fn.Type.Params.List {
		typeFQN := p.typeName(field.Type, ctx)
		typeKey := p.resolveKey(field.Type, ctx)
		if len(field.Names) == 0 {
			params = append(params, &paramEntry{provider: p, typeFQN: typeFQN, typeKey: typeKey})
			continue
		}
		for _, name := range field.Names {
			params = append(params, &paramEntry{
				provider: p,
				name:     name.Name,
				typeFQN:  typeFQN,
				typeKey:  typeKey,
			})
		}
	}
	return params
}

// returnTypeKey resolves the member's first non-error result to a type key.
func (p *GoProvider) returnTypeKey(fn *ast.FuncDecl, ctx *fileContext) string {
	if fn.Type.Results == nil {
		return ""
	}
	for _, field := range fn.Type.Results.List {
		if ident, ok := field.Type.(*ast.Ident); ok && ident.Name == "error" {
			continue
		}
		return p.resolveKey(field.Type, ctx)
	}
	return ""
}

// packageScopeFor returns the scope of a package, creating it on first use.
func (p *GoProvider) packageScopeFor(pkgPath string) *packageScope {
	if pkg, ok := p.packages[pkgPath]; ok {
		return pkg
	}
	pkg := &packageScope{scopeData: scopeData{name: pkgPath}}
	p.packages[pkgPath] = pkg
	return pkg
}

// typeScopeFor returns the scope of a receiver type, creating a bare
// declaration when the type itself was not found, so the scope chain
// still reaches the package.
func (p *GoProvider) typeScopeFor(fqn string, ctx *fileContext) *typeDecl {
	if decl, ok := p.types[fqn]; ok {
		return decl
	}
	decl := &typeDecl{
		scopeData: scopeData{
			name:      fqn,
			enclosing: p.packageScopeFor(ctx.pkgPath),
		},
		provider: p,
		fqn:      fqn,
		ctx:      ctx,
	}
	p.types[fqn] = decl
	return decl
}

// declaredNamesFor returns the declared-type-name set of a package.
func (p *GoProvider) declaredNamesFor(pkgPath string) map[string]bool {
	if names, ok := p.declared[pkgPath]; ok {
		return names
	}
	names := make(map[string]bool)
	p.declared[pkgPath] = names
	return names
}

// lookupType resolves a type key to its declaration.
func (p *GoProvider) lookupType(key string) TypeRef {
	if key == "" {
		return nil
	}
	decl, ok := p.types[key]
	if !ok {
		return nil
	}
	return decl
}

// typeName renders a type expression as a fully qualified name. Types
// declared in the same package are qualified with the package path,
// imported types with their import path; everything else renders as
// written.
func (p *GoProvider) typeName(expr ast.Expr, ctx *fileContext) string {
	switch t := expr.(type) {
	case *ast.Ident:
		if p.declared[ctx.pkgPath][t.Name] {
			return ctx.pkgPath + "." + t.Name
		}
		return t.Name
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			if path, ok := ctx.imports[x.Name]; ok {
				return path + "." + t.Sel.Name
			}
			return x.Name + "." + t.Sel.Name
		}
	case *ast.StarExpr:
		return "*" + p.typeName(t.X, ctx)
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + p.typeName(t.Elt, ctx)
		}
	case *ast.MapType:
		return "map[" + p.typeName(t.Key, ctx) + "]" + p.typeName(t.Value, ctx)
	case *ast.Ellipsis:
		return "..." + p.typeName(t.Elt, ctx)
	case *ast.IndexExpr:
		return p.typeName(t.X, ctx)
	case *ast.IndexListExpr:
		return p.typeName(t.X, ctx)
	}
	return types.ExprString(expr)
}

// resolveKey derives the lookup key of a type expression, unwrapping
// pointers and type arguments. An empty key means the expression does not
// denote a resolvable nominal type.
func (p *GoProvider) resolveKey(expr ast.Expr, ctx *fileContext) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return ctx.pkgPath + "." + t.Name
	case *ast.StarExpr:
		return p.resolveKey(t.X, ctx)
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			if path, ok := ctx.imports[x.Name]; ok {
				return path + "." + t.Sel.Name
			}
		}
	case *ast.IndexExpr:
		return p.resolveKey(t.X, ctx)
	case *ast.IndexListExpr:
		return p.resolveKey(t.X, ctx)
	}
	return ""
}

// receiverTypeName unwraps a method receiver to its type identifier.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return ""
}

// importMap builds the alias → import path table of a file.
func importMap(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		alias := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			alias = path[idx+1:]
		}
		if imp.Name != nil {
			alias = imp.Name.Name
		}
		imports[alias] = path
	}
	return imports
}

// hasDeprecatedLine reports whether a doc comment carries the standard
// "Deprecated:" convention.
func hasDeprecatedLine(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, line := range strings.Split(doc.Text(), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Deprecated:") {
			return true
		}
	}
	return false
}

func sortedTypeKeys(types map[string]*typeDecl) []string {
	keys := make([]string, 0, len(types))
	for key := range types {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// scopeData is the shared Scope implementation of packages, types and
// members.
type scopeData struct {
	name       string
	mappings   []*annotations.Mapping
	deprecated bool
	enclosing  Scope
}

func (s *scopeData) Name() string { return s.name }

func (s *scopeData) Mapping(kind annotations.Kind) *annotations.Mapping {
	for _, m := range s.mappings {
		if m.Kind == kind {
			return m
		}
	}
	return nil
}

func (s *scopeData) Kinds() []annotations.Kind {
	var kinds []annotations.Kind
	for _, k := range annotations.Recognized {
		if s.Mapping(k) != nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s *scopeData) Enclosing() Scope { return s.enclosing }
func (s *scopeData) Deprecated() bool { return s.deprecated }

// packageScope is the outermost scope of the chain.
type packageScope struct {
	scopeData
}

// typeDecl is a declared type: a Scope for annotation resolution and a
// TypeRef for DTO reflection.
type typeDecl struct {
	scopeData
	provider   *GoProvider
	fqn        string
	ctx        *fileContext
	structType *ast.StructType // nil for non-struct declarations
	fields     []Field
	superKey   string
}

func (t *typeDecl) FQN() string     { return t.fqn }
func (t *typeDecl) Nominal() bool   { return t.structType != nil }
func (t *typeDecl) Fields() []Field { return t.fields }

func (t *typeDecl) Superclass() TypeRef {
	return t.provider.lookupType(t.superKey)
}

// memberScope is an annotated handler method.
type memberScope struct {
	scopeData
	provider  *GoProvider
	declaring string
	queries   []*annotations.QueryMarker
	bodies    []*annotations.BodyMarker
	params    []FormalParam
	retKey    string
}

func (m *memberScope) DeclaringType() string               { return m.declaring }
func (m *memberScope) Params() []FormalParam               { return m.params }
func (m *memberScope) Queries() []*annotations.QueryMarker { return m.queries }
func (m *memberScope) Bodies() []*annotations.BodyMarker   { return m.bodies }
func (m *memberScope) ReturnType() TypeRef                 { return m.provider.lookupType(m.retKey) }

// paramEntry is one formal parameter of a member.
type paramEntry struct {
	provider *GoProvider
	name     string
	typeFQN  string
	typeKey  string
}

func (p *paramEntry) Name() string    { return p.name }
func (p *paramEntry) TypeFQN() string { return p.typeFQN }
func (p *paramEntry) Type() TypeRef   { return p.provider.lookupType(p.typeKey) }

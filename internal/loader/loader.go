package loader

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/seitarof/gen-derive/syntax"
)

// Loader extracts type definitions from Go packages.
type Loader interface {
	Load(pkgPath string) ([]syntax.Item, error)
}

type loaderImpl struct{}

// New returns default loader.
func New() Loader {
	return &loaderImpl{}
}

// Load returns the top-level type declarations of pkgPath in source order.
// Structs become struct items, sealed interfaces become enums whose variants
// are the package's struct types implementing them, and interfaces whose
// type set is a union become union items. Everything else is skipped.
func (l *loaderImpl) Load(pkgPath string) ([]syntax.Item, error) {
	pkg, err := l.loadPackage(pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pkgPath)
	}

	c := &collector{fset: pkg.Fset, info: pkg.TypesInfo}
	for _, file := range pkg.Syntax {
		c.collectFile(file)
	}
	return c.items(), nil
}

func (l *loaderImpl) loadPackage(pkgPath string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPath)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	return pkgs[0], nil
}

// decl is one top-level type declaration kept in source order.
type decl struct {
	item  syntax.Item
	named *types.Named
	iface *types.Interface
}

type collector struct {
	fset  *token.FileSet
	info  *types.Info
	decls []decl
}

func (c *collector) collectFile(file *ast.File) {
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			c.collectSpec(ts, doc)
		}
	}
}

func (c *collector) collectSpec(ts *ast.TypeSpec, doc *ast.CommentGroup) {
	obj, ok := c.info.Defs[ts.Name].(*types.TypeName)
	if !ok || obj.IsAlias() {
		return
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return
	}

	item := syntax.Item{
		Name:  ts.Name.Name,
		Attrs: c.annotations(doc, ts.Comment),
		Pos:   c.fset.Position(ts.Name.Pos()),
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		item.Kind = syntax.KindStruct
		item.Fields = c.fields(t)
		c.decls = append(c.decls, decl{item: item, named: named})
	case *ast.InterfaceType:
		iface, ok := named.Underlying().(*types.Interface)
		if !ok {
			return
		}
		switch {
		case !iface.IsMethodSet():
			item.Kind = syntax.KindUnion
		case isSealed(iface):
			item.Kind = syntax.KindEnum
		default:
			return
		}
		item.Fields = syntax.EmptyFields()
		c.decls = append(c.decls, decl{item: item, named: named, iface: iface})
	}
}

// items resolves enum variants and returns every collected item.
func (c *collector) items() []syntax.Item {
	out := make([]syntax.Item, 0, len(c.decls))
	for _, d := range c.decls {
		item := d.item
		if item.Kind == syntax.KindEnum {
			item.Variants = c.variants(d.iface)
		}
		out = append(out, item)
	}
	return out
}

func (c *collector) variants(iface *types.Interface) []syntax.Variant {
	var out []syntax.Variant
	for _, d := range c.decls {
		if d.item.Kind != syntax.KindStruct || d.named.TypeParams().Len() > 0 {
			continue
		}
		if !types.Implements(d.named, iface) && !types.Implements(types.NewPointer(d.named), iface) {
			continue
		}
		out = append(out, syntax.Variant{
			Name:   d.item.Name,
			Attrs:  d.item.Attrs,
			Fields: d.item.Fields,
			Pos:    d.item.Pos,
		})
	}
	return out
}

func (c *collector) fields(st *ast.StructType) syntax.Fields {
	var list []syntax.Field
	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)
		attrs := c.annotations(f.Doc, f.Comment)
		if len(f.Names) == 0 {
			list = append(list, syntax.Field{
				Name:  embeddedName(f.Type),
				Type:  typ,
				Attrs: attrs,
				Pos:   c.fset.Position(f.Type.Pos()),
			})
			continue
		}
		for _, n := range f.Names {
			list = append(list, syntax.Field{
				Name:  n.Name,
				Type:  typ,
				Attrs: attrs,
				Pos:   c.fset.Position(n.Pos()),
			})
		}
	}
	if len(list) == 0 {
		return syntax.EmptyFields()
	}
	return syntax.GroupedFields(list...)
}

func (c *collector) annotations(groups ...*ast.CommentGroup) []syntax.Attribute {
	var out []syntax.Attribute
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, cm := range g.List {
			out = append(out, commentAnnotations(cm.Text, c.fset.Position(cm.Slash))...)
		}
	}
	return out
}

// isSealed reports whether iface has an unexported method, which keeps
// implementations inside the declaring package.
func isSealed(iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if !iface.Method(i).Exported() {
			return true
		}
	}
	return false
}

// embeddedName returns the implicit field name of an embedded field.
func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.Ident:
		return e.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return types.ExprString(expr)
	}
}

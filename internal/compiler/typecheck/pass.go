package typecheck

import "github.com/ablang/abc/internal/compiler/ast"

// Pass is one independent checking concern run over the whole program.
// Passes run in order and share a PassContext; a pass never mutates the
// tree, only PassContext.Errors and the annotations each AST node already
// carries (ResolvedType, DeclID, VariantID).
type Pass interface {
	Name() string
	Run(prog *ast.Program, ctx *PassContext)
}

// PassManager runs a fixed sequence of passes, stopping early if a pass
// leaves the context with errors — later passes generally assume earlier
// ones succeeded (e.g. the type pass assumes declarations resolved).
type PassManager struct {
	passes []Pass
}

func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

func (pm *PassManager) RunAll(prog *ast.Program, ctx *PassContext) {
	for _, p := range pm.passes {
		p.Run(prog, ctx)
		if ctx.HasErrors() {
			return
		}
	}
}

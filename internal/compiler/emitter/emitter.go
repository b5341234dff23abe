package emitter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/arnavsurve/climb/internal/compiler/ast"
	"github.com/arnavsurve/climb/internal/compiler/eval"
	"github.com/arnavsurve/climb/internal/compiler/lib"
)

const (
	areaAIndent       = "       "     // 7 spaces (column 8)
	areaBIndent       = "           " // 11 spaces (column 12)
	continuationExtra = "    "        // extra indent for wrapped statement lines
	cobolLineEndCol   = 72            // Standard line length limit

	// Internal items use a prefix sanitizeIdentifier never produces.
	resultVarName    = "CLIMB-RESULT"
	resultOutVarName = "CLIMB-RESULT-OUT"
	resultDigits     = 18
	maxLiteralDigits = 31
)

// unaryFuncs maps one-argument builtins to their GnuCOBOL intrinsic.
var unaryFuncs = map[string]string{
	"sqrt":  "SQRT",
	"abs":   "ABS",
	"sin":   "SIN",
	"cos":   "COS",
	"tan":   "TAN",
	"ln":    "LOG",
	"log":   "LOG10",
	"exp":   "EXP",
	"floor": "INTEGER",
}

// binaryFuncs maps curried builtins, written f(a)(b), to intrinsics taking
// two arguments.
var binaryFuncs = map[string]string{
	"min": "MIN",
	"max": "MAX",
}

type Emitter struct {
	builder       strings.Builder
	errors        []string
	foldConstants bool
	values        map[string]float64 // initial VALUEs; other variables are ACCEPTed
	declaredVars  map[string]bool    // source names of variables in WORKING-STORAGE
	warnings      []string
}

type Option func(*Emitter)

// WithConstantFolding controls whether constant-only sub-expressions are
// evaluated at compile time. It is on by default.
func WithConstantFolding(on bool) Option {
	return func(e *Emitter) { e.foldConstants = on }
}

// WithValues gives variables an initial VALUE instead of reading them with ACCEPT.
func WithValues(values map[string]float64) Option {
	return func(e *Emitter) { e.values = values }
}

func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		errors:        []string{},
		foldConstants: true,
		declaredVars:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Emitter) addError(format string, args ...any) {
	errMsg := fmt.Sprintf(format, args...)
	e.errors = append(e.errors, errMsg)
}

func (e *Emitter) Errors() []string {
	return e.errors
}

// Err returns every error from the last Emit as one error, or nil.
func (e *Emitter) Err() error {
	var result *multierror.Error
	for _, msg := range e.errors {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	return result.ErrorOrNil()
}

// sanitizeIdentifier ALWAYS prepends "GRACE-" and uppercases. Underscores
// become hyphens since COBOL names cannot contain them.
func sanitizeIdentifier(name string) string {
	safeName := strings.ReplaceAll(strings.ToUpper(name), "_", "-")
	if strings.HasSuffix(safeName, "-") {
		safeName += "X" // COBOL names cannot end in a hyphen
	}
	return "GRACE-" + safeName
}

// --- Emit Helpers ---

func (e *Emitter) emitA(line string) {
	e.builder.WriteString(areaAIndent + line + "\n")
}

// emitB writes a statement to Area B, ensuring it ends with a period. Lines
// past column 72 are wrapped at spaces onto indented continuation lines.
func (e *Emitter) emitB(line string) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" {
		return
	}
	if !strings.HasSuffix(trimmedLine, ".") {
		trimmedLine += "."
	}

	indent := areaBIndent
	for len(indent)+len(trimmedLine) > cobolLineEndCol {
		room := cobolLineEndCol - len(indent)
		cut := strings.LastIndex(trimmedLine[:room+1], " ")
		if cut <= 0 {
			// A single word wider than the line; emit it as is.
			break
		}
		e.builder.WriteString(indent + trimmedLine[:cut] + "\n")
		trimmedLine = strings.TrimLeft(trimmedLine[cut:], " ")
		indent = areaBIndent + continuationExtra
	}
	e.builder.WriteString(indent + trimmedLine + "\n")
}

func (e *Emitter) emitComment(comment string) {
	line := "      *" + comment
	e.builder.WriteString(line + "\n")
}

// --- Analysis Phase ---

// analyzeExpression records every identifier used as a value. Identifiers in
// callee position name intrinsics and are not variables.
func (e *Emitter) analyzeExpression(expr ast.Node) {
	switch node := expr.(type) {
	case *ast.Identifier:
		if _, isConst := e.builtinConstant(node.Name); !isConst {
			e.declaredVars[node.Name] = true
		}
	case *ast.Negate:
		e.analyzeExpression(node.Operand)
	case *ast.Binary:
		e.analyzeExpression(node.Left)
		e.analyzeExpression(node.Right)
	case *ast.Call:
		if _, ok := node.Callee.(*ast.Identifier); !ok {
			e.analyzeExpression(node.Callee)
		}
		e.analyzeExpression(node.Arg)
	}
}

func (e *Emitter) builtinConstant(name string) (string, bool) {
	if _, shadowed := e.values[name]; shadowed {
		return "", false
	}
	switch name {
	case "pi":
		return "FUNCTION PI", true
	case "e":
		return "FUNCTION E", true
	}
	return "", false
}

// foldConstantsIn returns a copy of expr with every constant-only sub-tree
// replaced by its value. Sub-trees whose value is not finite are kept so the
// division-by-zero warning still fires.
func foldConstantsIn(expr ast.Node) ast.Node {
	if _, isLeaf := expr.(*ast.Constant); !isLeaf && eval.IsConstant(expr) {
		if v, err := eval.EvalNumber(expr, nil); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return ast.Num(v)
		}
	}
	switch node := expr.(type) {
	case *ast.Negate:
		return ast.Neg(foldConstantsIn(node.Operand))
	case *ast.Binary:
		return ast.Bin(foldConstantsIn(node.Left), node.Op, foldConstantsIn(node.Right))
	case *ast.Call:
		return ast.CallOf(foldConstantsIn(node.Callee), foldConstantsIn(node.Arg))
	}
	return ast.Clone(expr)
}

// Emit generates a GnuCOBOL program that computes expr and displays the
// result. Check Errors (or Err) afterwards; on error the text is incomplete.
func (e *Emitter) Emit(expr ast.Node, nameWithoutExt string) string {
	e.builder.Reset()
	e.errors = []string{}
	e.declaredVars = make(map[string]bool)
	e.warnings = nil

	if expr == nil {
		e.addError("Internal Emitter Error: Received nil expression from parser.")
		return ""
	}

	if e.foldConstants {
		expr = foldConstantsIn(expr)
	}
	e.analyzeExpression(expr)

	computeExpr, err := e.emitExpressionForCompute(expr)
	if err != nil {
		return ""
	}

	e.emitHeader(nameWithoutExt)
	e.emitDataDivision()

	e.builder.WriteString(areaAIndent + "PROCEDURE DIVISION.\n")
	e.builder.WriteString(areaAIndent + "MAIN SECTION.\n")
	for _, name := range e.sortedVars() {
		if _, hasValue := e.values[name]; !hasValue {
			e.emitB(fmt.Sprintf("ACCEPT %s", sanitizeIdentifier(name)))
		}
	}
	for _, w := range e.warnings {
		e.emitComment(w)
	}
	e.emitB(fmt.Sprintf("COMPUTE %s = %s", resultVarName, computeExpr))
	e.emitB(fmt.Sprintf("MOVE %s TO %s", resultVarName, resultOutVarName))
	e.emitB(fmt.Sprintf("DISPLAY %s", resultOutVarName))
	e.emitB("GOBACK")

	return e.builder.String()
}

func (e *Emitter) sortedVars() []string {
	names := make([]string, 0, len(e.declaredVars))
	for name := range e.declaredVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- Emit Structure Divisions ---

func (e *Emitter) emitHeader(nameWithoutExt string) {
	e.builder.WriteString(areaAIndent + "IDENTIFICATION DIVISION.\n")
	programId := fmt.Sprintf("PROGRAM-ID. %s.", strings.ToUpper(nameWithoutExt))
	e.builder.WriteString(areaAIndent + programId + "\n\n")
}

func (e *Emitter) emitDataDivision() {
	e.emitA("DATA DIVISION.")
	e.emitA("WORKING-STORAGE SECTION.")

	for _, name := range e.sortedVars() {
		cobolName := sanitizeIdentifier(name)
		if val, ok := e.values[name]; ok {
			width := max(lib.DefaultIntegerDigits, lib.CalculateWidthForValue(val))
			lit, err := cobolLiteral(val)
			if err != nil {
				e.addError("Emitter Error: value of '%s': %v", name, err)
				continue
			}
			e.emitA(fmt.Sprintf("01 %s PIC S9(%d)V9(%d) VALUE %s.", cobolName, width, lib.FractionDigits, lit))
		} else {
			e.emitA(fmt.Sprintf("01 %s PIC S9(%d)V9(%d).", cobolName, lib.DefaultIntegerDigits, lib.FractionDigits))
		}
	}
	e.emitA(fmt.Sprintf("01 %s PIC S9(%d)V9(%d).", resultVarName, resultDigits, lib.FractionDigits))
	e.emitA(fmt.Sprintf("01 %s PIC -(%d)9.9(%d).", resultOutVarName, resultDigits, lib.FractionDigits))
	e.builder.WriteString("\n")
}

// cobolLiteral renders val as a COBOL numeric literal (no exponent form).
func cobolLiteral(val float64) (string, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return "", fmt.Errorf("%g has no COBOL literal", val)
	}
	lit := strconv.FormatFloat(val, 'f', -1, 64)
	digits := len(strings.NewReplacer("-", "", ".", "").Replace(lit))
	if digits > maxLiteralDigits {
		return "", fmt.Errorf("%s has more than %d digits", lit, maxLiteralDigits)
	}
	return lit, nil
}

// --- Expressions ---

func (e *Emitter) emitExpressionForCompute(expr ast.Node) (string, error) {
	if expr == nil {
		err := fmt.Errorf("nil expression")
		e.addError("Internal Emitter Error: %v", err)
		return "", err
	}
	switch node := expr.(type) {
	case *ast.Identifier:
		if intrinsic, ok := e.builtinConstant(node.Name); ok {
			return intrinsic, nil
		}
		return sanitizeIdentifier(node.Name), nil

	case *ast.Constant:
		lit, err := cobolLiteral(node.Value)
		if err != nil {
			e.addError("Emitter Error: %v", err)
			return "", err
		}
		if node.Value < 0 {
			lit = fmt.Sprintf("( %s )", lit)
		}
		return lit, nil

	case *ast.Negate:
		operand, err := e.emitOperand(node.Operand)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("( 0 - %s )", operand), nil

	case *ast.Binary:
		if node.Op == ast.Div || node.Op == ast.Mod {
			if lit, ok := node.Right.(*ast.Constant); ok && lit.Value == 0 {
				e.warnings = append(e.warnings, "WARNING: Potential division by zero")
			}
		}
		if node.Op == ast.Mod {
			return e.emitIntrinsic2("REM", node.Left, node.Right)
		}
		leftStr, errL := e.emitOperand(node.Left)
		if errL != nil {
			return "", errL
		}
		rightStr, errR := e.emitOperand(node.Right)
		if errR != nil {
			return "", errR
		}
		return fmt.Sprintf("%s %s %s", leftStr, node.Op, rightStr), nil

	case *ast.Call:
		return e.emitCall(node)

	default:
		err := fmt.Errorf("unknown expr type %T in arithmetic", expr)
		e.addError("Emitter Error: %v", err)
		return "", err
	}
}

// emitOperand emits expr for use beside an operator, parenthesizing binary
// expressions so COBOL precedence cannot regroup them.
func (e *Emitter) emitOperand(expr ast.Node) (string, error) {
	str, err := e.emitExpressionForCompute(expr)
	if err != nil {
		return "", err
	}
	if _, ok := expr.(*ast.Binary); ok {
		str = fmt.Sprintf("( %s )", str)
	}
	return str, nil
}

func (e *Emitter) emitIntrinsic2(intrinsic string, a, b ast.Node) (string, error) {
	aStr, err := e.emitExpressionForCompute(a)
	if err != nil {
		return "", err
	}
	bStr, err := e.emitExpressionForCompute(b)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("FUNCTION %s(%s, %s)", intrinsic, aStr, bStr), nil
}

// emitCall lowers f(x) to an intrinsic call. The only chained form accepted is
// a curried two-argument builtin, f(a)(b).
func (e *Emitter) emitCall(call *ast.Call) (string, error) {
	if inner, ok := call.Callee.(*ast.Call); ok {
		name, ok := inner.Callee.(*ast.Identifier)
		if !ok {
			err := fmt.Errorf("call of computed callee %s", inner.Callee)
			e.addError("Emitter Error: %v", err)
			return "", err
		}
		if name.Name == "pow" {
			a, err := e.emitOperand(inner.Arg)
			if err != nil {
				return "", err
			}
			b, err := e.emitOperand(call.Arg)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("( %s ** %s )", a, b), nil
		}
		intrinsic, ok := binaryFuncs[name.Name]
		if !ok {
			err := fmt.Errorf("'%s' is not a two-argument function", name.Name)
			e.addError("Emitter Error: %v", err)
			return "", err
		}
		return e.emitIntrinsic2(intrinsic, inner.Arg, call.Arg)
	}

	name, ok := call.Callee.(*ast.Identifier)
	if !ok {
		err := fmt.Errorf("call of computed callee %s", call.Callee)
		e.addError("Emitter Error: %v", err)
		return "", err
	}
	arg, err := e.emitExpressionForCompute(call.Arg)
	if err != nil {
		return "", err
	}
	if name.Name == "ceil" {
		return fmt.Sprintf("( 0 - FUNCTION INTEGER( 0 - %s ) )", arg), nil
	}
	intrinsic, ok := unaryFuncs[name.Name]
	if !ok {
		err := fmt.Errorf("no COBOL equivalent for function '%s'", name.Name)
		e.addError("Emitter Error: %v", err)
		return "", err
	}
	return fmt.Sprintf("FUNCTION %s(%s)", intrinsic, arg), nil
}

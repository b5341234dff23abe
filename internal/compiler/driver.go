package compiler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/arnavsurve/climb/internal/compiler/ast"
	"github.com/arnavsurve/climb/internal/compiler/emitter"
	"github.com/arnavsurve/climb/internal/compiler/eval"
	"github.com/arnavsurve/climb/internal/compiler/lexer"
	"github.com/arnavsurve/climb/internal/compiler/parser"
	"github.com/arnavsurve/climb/internal/compiler/token"
	"github.com/arnavsurve/climb/internal/logger"
)

// SourceExt is the extension of expression source files.
const SourceExt = ".calc"

// ParseSource lexes and parses a single expression.
func ParseSource(src string) (ast.Node, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	logger.Debug("lexed source", zap.Int("tokens", len(toks)))

	node, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed expression", zap.String("tree", node.String()), zap.Int("depth", ast.Depth(node)))
	return node, nil
}

// ParseTokenFile parses a YAML token stream written by token.WriteStream.
func ParseTokenFile(path string) (ast.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open token file")
	}
	defer f.Close()

	toks, err := token.ReadStream(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read token file %s", path)
	}
	logger.Debug("read token file", zap.String("path", path), zap.Int("tokens", len(toks)))
	return parser.Parse(toks)
}

// EvalSource parses src and evaluates it to a number in env.
func EvalSource(src string, env *eval.Env) (float64, error) {
	node, err := ParseSource(src)
	if err != nil {
		return 0, err
	}
	return eval.EvalNumber(node, env)
}

// CompileAndWrite compiles the expression in srcPath to a COBOL program in
// outDir and returns the path written.
func CompileAndWrite(srcPath, outDir string, opts ...emitter.Option) (string, error) {
	if err := validateExtension(srcPath); err != nil {
		return "", err
	}

	content, err := readSource(srcPath)
	if err != nil {
		return "", err
	}

	node, err := ParseSource(content)
	if err != nil {
		return "", errors.Wrapf(err, "compile %s", srcPath)
	}

	cobol, err := emitCobol(node, srcPath, opts...)
	if err != nil {
		return "", errors.Wrapf(err, "compile %s", srcPath)
	}

	outFile, err := writeOutput(cobol, srcPath, outDir)
	if err != nil {
		return "", err
	}
	logger.Info("wrote COBOL", zap.String("src", srcPath), zap.String("out", outFile))

	return outFile, nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return errors.Errorf("source must have %s extension: %s", SourceExt, path)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read source")
	}
	return string(b), nil
}

func programName(srcPath string) string {
	return strings.TrimSuffix(filepath.Base(srcPath), SourceExt)
}

func emitCobol(node ast.Node, srcPath string, opts ...emitter.Option) (string, error) {
	em := emitter.NewEmitter(opts...)
	cobol := em.Emit(node, programName(srcPath))
	if err := em.Err(); err != nil {
		return "", errors.Wrap(err, "emitter errors")
	}
	return cobol, nil
}

func writeOutput(cobol, srcPath, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}
	outFile := filepath.Join(outDir, programName(srcPath)+".cbl")
	if err := os.WriteFile(outFile, []byte(cobol), 0o644); err != nil {
		return "", errors.Wrap(err, "write output")
	}
	return outFile, nil
}

package parser

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/evbt/fml/fmlerr"
	"github.com/evbt/fml/formula"
)

var logger = slog.With("section", "parser")

// Parse is the lenient entry point: on lexical or syntax errors it returns
// no formula together with the recorded errors, for the caller to report.
func Parse(src string, st formula.SymbolContext) (*formula.Formula, *fmlerr.Errors) {
	return parse(src, st)
}

// MustParse is the strict entry point, for formula text that is expected to
// always be well formed (such as previously validated model text). On
// failure it prints the offending input and a dump of the symbol context,
// then panics with the first recorded error; embedding applications treat
// that as an unrecoverable abort.
func MustParse(src string, st formula.SymbolContext) *formula.Formula {
	f, errs := parse(src, st)
	if f == nil {
		fmt.Fprintf(os.Stderr, "could not parse formula:\n    %s\n", src)
		for _, e := range errs.Errors() {
			fmt.Fprintln(os.Stderr, fmlerr.FormatWithCode(e))
		}
		fmt.Fprintf(os.Stderr, "\nwhile using symbol table:\n%s", st.Dump())
		if es := errs.Errors(); len(es) > 0 {
			panic(es[0])
		}
		panic(fmlerr.New(fmlerr.NewSyntax{ParserMessage: "no formula produced for " + src}))
	}
	return f
}

func parse(src string, st formula.SymbolContext) (f *formula.Formula, errs *fmlerr.Errors) {
	logger.Debug("parsing", "formula", src)
	p := &parser{lex: newLexer(src), st: st}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); ok {
				f = nil
				errs = p.errs
				return
			}
			// not a reported syntax error: a defect in the parser
			// itself, always fatal
			panic(fmlerr.New(fmlerr.NewEngineFault{From: r}))
		}
	}()
	f = p.parseFormula(0)
	if t := p.peek(0); t.kind != tokEOF {
		p.fail(t, "unexpected input after formula: %s", describe(t))
	}
	if p.errs.HasError() {
		return nil, p.errs
	}
	return f, nil
}

package gen

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"
)

// Sink receives generated artifacts: a fully qualified target name and an
// ordered sequence of member definitions as structured snippets. No textual
// templating crosses this boundary. A sink guarantees at most one write per
// target name per run; a second write for the same name is an error.
type Sink interface {
	Write(target string, members []jen.Code) error
}

// FileSink accumulates every artifact of one run into a single jennifer
// file. Rendering and import management stay mechanical concerns of the
// jennifer backend.
type FileSink struct {
	file    *jen.File
	written map[string]bool
}

// NewFileSink builds a sink for the target package. pkgPath is the import
// path of the generated file so same-package references render unqualified.
func NewFileSink(pkgPath, pkgName string) *FileSink {
	f := jen.NewFilePathName(pkgPath, pkgName)
	f.HeaderComment("Code generated by opticgen. DO NOT EDIT.")
	return &FileSink{
		file:    f,
		written: make(map[string]bool),
	}
}

func (s *FileSink) Write(target string, members []jen.Code) error {
	if s.written[target] {
		return fmt.Errorf("duplicate generated artifact %q", target)
	}
	s.written[target] = true
	for _, m := range members {
		s.file.Add(m)
		s.file.Line()
	}
	return nil
}

// Render writes the accumulated file.
func (s *FileSink) Render(w io.Writer) error {
	return s.file.Render(w)
}

// MemorySink records artifacts for inspection in tests.
type MemorySink struct {
	Targets []string
	Members map[string][]jen.Code
}

func NewMemorySink() *MemorySink {
	return &MemorySink{Members: make(map[string][]jen.Code)}
}

func (s *MemorySink) Write(target string, members []jen.Code) error {
	if _, ok := s.Members[target]; ok {
		return fmt.Errorf("duplicate generated artifact %q", target)
	}
	s.Targets = append(s.Targets, target)
	s.Members[target] = members
	return nil
}

// Source renders one artifact's members to Go source text.
func (s *MemorySink) Source(target string) string {
	var out string
	for _, m := range s.Members[target] {
		out += fmt.Sprintf("%#v\n", m)
	}
	return out
}

package generate

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/higher-kinded-j/opticgen/internal/introspect"
	"github.com/higher-kinded-j/opticgen/pkg/opticgen"
)

func runSample(t *testing.T, opts *opticgen.Options) string {
	t.Helper()
	outFile, err := Run(opts)
	require.NoError(t, err)
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	return string(data)
}

func TestRunGeneratesFullPackage(t *testing.T) {
	opts := opticgen.NewOptions()
	opts.InDir = "testdata/sample"
	opts.OutDir = t.TempDir()

	src := runSample(t, opts)

	require.Contains(t, src, "Code generated by opticgen. DO NOT EDIT.")
	require.Contains(t, src, "package sample")

	// product lenses and updaters
	require.Contains(t, src, "func OrderIDLens()")
	require.Contains(t, src, "func WithOrderID(")
	require.Contains(t, src, "func CustomerNameLens()")

	// auto-detected list traversal with its alias and fold
	require.Contains(t, src, "func OrderLinesTraversal()")
	require.Contains(t, src, "func OrderEachLine()")
	require.Contains(t, src, "func OrderLinesFold()")

	// type arguments render comma-separated, and container spellings
	// round-trip: struct{}-valued maps are sets, bool-valued maps are maps
	require.Contains(t, src, "optics.Lens[sample.Order, map[string]struct{}]")
	require.Contains(t, src, "optics.SetTraversal[string]()")
	require.Contains(t, src, "optics.MapValues[string, bool]()")
	require.Contains(t, src, "optics.MapValues[sample.Coord, int]()")

	// default depth 1: one navigator hop into the nested product
	require.Contains(t, src, "func NavigateOrderCustomer() OrderCustomerNavigator")
	require.Contains(t, src, "type OrderCustomerNavigator struct")
	require.Contains(t, src, "func (n OrderCustomerNavigator) ToPath()")

	// sealed sum: one instance-of prism per variant
	require.Contains(t, src, "func PaymentAsCardPrism()")
	require.Contains(t, src, "func PaymentAsCashPrism()")

	// enum constants each get an equality prism
	require.Contains(t, src, "func StatusAsOpenPrism()")
	require.Contains(t, src, "func StatusAsClosedPrism()")
}

func TestRunHonoursTypeDeclarations(t *testing.T) {
	opts := opticgen.NewOptions()
	opts.InDir = "testdata/sample"
	opts.OutDir = t.TempDir()
	opts.Types = []opticgen.TypeSpec{
		{
			Name:     "Order",
			Navigate: &opticgen.NavSpec{Exclude: []string{"Customer"}},
		},
	}

	src := runSample(t, opts)
	require.NotContains(t, src, "OrderCustomerNavigator")
	require.Contains(t, src, "func OrderCustomerLens()")
}

func TestRunUnknownTraversalFieldFails(t *testing.T) {
	opts := opticgen.NewOptions()
	opts.InDir = "testdata/sample"
	opts.OutDir = t.TempDir()
	opts.Types = []opticgen.TypeSpec{
		{
			Name:       "Order",
			Traversals: []opticgen.TraversalSpec{{Field: "Nope", Ref: "X()"}},
		},
	}

	_, err := Run(opts)
	require.Error(t, err)
	require.ErrorContains(t, err, "no such field")
}

func TestRunRejectsMutableTypesByDefault(t *testing.T) {
	opts := opticgen.NewOptions()
	opts.InDir = "testdata/mutable"
	opts.OutDir = t.TempDir()

	_, err := Run(opts)
	require.Error(t, err)
	require.ErrorContains(t, err, "qualifying setters")
	require.ErrorContains(t, err, "allow-mutable")
}

func TestRunAllowMutableGeneratesCopyLenses(t *testing.T) {
	opts := opticgen.NewOptions()
	opts.InDir = "testdata/mutable"
	opts.OutDir = t.TempDir()
	opts.AllowMutable = true

	src := runSample(t, opts)
	require.Contains(t, src, "func CounterValueLens()")
	require.Contains(t, src, "s.Value()")
	require.Contains(t, src, "s.WithValue(a)")
}

// The generated package must type-check, not just look right, so the fixture
// is staged into a throwaway module and built with the optics runtime
// resolved from the working tree.
func TestRunOutputCompiles(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	_, rootDir, err := introspect.ModulePath(".")
	require.NoError(t, err)

	dir := t.TempDir()
	entries, err := os.ReadDir(filepath.Join("testdata", "sample"))
	require.NoError(t, err)
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".go" {
			continue
		}
		data, err := os.ReadFile(filepath.Join("testdata", "sample", e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}
	gomod := "module example.com/sample\n\ngo 1.24\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))

	opts := opticgen.NewOptions()
	opts.InDir = dir
	opts.OutDir = filepath.Join(dir, "optics")
	_, err = Run(opts)
	require.NoError(t, err)

	gomod += "\nrequire github.com/higher-kinded-j/opticgen v0.0.0\n\n" +
		"replace github.com/higher-kinded-j/opticgen => " + rootDir + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))

	cmd := exec.Command("go", "build", "./...")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod")
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "generated package does not compile:\n%s", out)
}

func TestRunWritesIntoNestedOutDir(t *testing.T) {
	opts := opticgen.NewOptions()
	opts.InDir = "testdata/sample"
	opts.OutDir = filepath.Join(t.TempDir(), "gen", "optics")
	opts.OutFile = "zz_optics.go"

	outFile, err := Run(opts)
	require.NoError(t, err)
	require.Equal(t, "zz_optics.go", filepath.Base(outFile))
	_, err = os.Stat(outFile)
	require.NoError(t, err)
}

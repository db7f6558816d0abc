// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testEnv struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	exits  []int
}

// attach routes c's output to te and formats without colors.
func attach(c *Command, noExit bool) *testEnv {
	te := &testEnv{}
	c.SetEnv(Env{
		Stdout: &te.stdout,
		Stderr: &te.stderr,
		Exit:   func(code int) { te.exits = append(te.exits, code) },
	})
	c.SetRenderConfig(PlainRenderConfig())
	c.SetNoExit(noExit)
	return te
}

func pizzaArg() CommandArg {
	return CommandArg{
		Name:        "pizza",
		Description: "Create your own pizza",
		Options: []OptionArg{
			{
				Short:       "b",
				Long:        "base",
				Description: "Choose the base",
				Mandatory:   true,
				Parameter: &ParameterArg{
					Name:      "base",
					Mandatory: true,
					Validator: AllowedValues("tomato", "cream"),
				},
			},
			{Short: "t", Long: "tomato", Description: "Add tomato"},
		},
	}
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v (%T), want *ValidationError", err, err)
	}
	return verr
}

func TestPizzaScenario(t *testing.T) {
	ctx := context.Background()
	pizza := MustNew(pizzaArg())
	te := attach(pizza, true)

	got, err := pizza.Parse(ctx, []string{"/usr/bin/pizza", "pizza", "-b", "tomato", "-t"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Values{"base": "tomato", "tomato": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if pizza.ExecPath() != "/usr/bin/pizza" || pizza.ScriptPath() != "pizza" {
		t.Errorf("ExecPath, ScriptPath = %q, %q", pizza.ExecPath(), pizza.ScriptPath())
	}

	_, err = pizza.Parse(ctx, []string{"/usr/bin/pizza", "pizza", "-t"})
	verr := asValidationError(t, err)
	missing := verr.Find(KindMandatoryOption)
	if len(missing) != 1 {
		t.Fatalf("got %d mandatory option errors, want 1:\n%s", len(missing), verr)
	}
	if !strings.HasPrefix(missing[0].Subject, "-b, --base") {
		t.Errorf("Subject = %q, want it to name -b, --base", missing[0].Subject)
	}
	wantReport := "An error occurred in command pizza:\n" +
		"    The option -b, --base <base> is mandatory for command pizza\n"
	if got := te.stderr.String(); got != wantReport {
		t.Errorf("stderr = %q, want %q", got, wantReport)
	}
	if len(te.exits) != 0 {
		t.Errorf("Exit called with %v in no-exit mode", te.exits)
	}
}

func TestParseExitsOnFailure(t *testing.T) {
	pizza := MustNew(pizzaArg())
	te := attach(pizza, false)

	_, err := pizza.Run(context.Background(), []string{"-b", "pineapple"})
	verr := asValidationError(t, err)
	if diff := cmp.Diff([]int{1}, te.exits); diff != "" {
		t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
	}
	want := "An error occurred in command pizza:\n" +
		"    pineapple is not a correct value for -b, --base <base>.\n" +
		"    Allowed values: tomato, cream.\n"
	if got := te.stderr.String(); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
	if got := verr.Error() + "\n"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMandatoryElementsReportedOnce(t *testing.T) {
	cook := MustNew(CommandArg{
		Name: "cook",
		Options: []OptionArg{
			{Short: "s", Long: "size", Mandatory: true, Parameter: &ParameterArg{Name: "size", Mandatory: true}},
			{Long: "oven", Mandatory: true},
			{Short: "q", Long: "quiet"},
		},
		Parameters: []ParameterArg{
			{Name: "recipe", Mandatory: true},
			{Name: "guests", Mandatory: true, Variadic: true},
		},
	})
	attach(cook, true)

	_, err := cook.Run(context.Background(), nil)
	report := asValidationError(t, err).Error()
	for _, usage := range []string{"-s, --size <size>", "--oven", "<recipe>", "<guests...>"} {
		if n := strings.Count(report, usage); n != 1 {
			t.Errorf("%q appears %d times in report, want 1:\n%s", usage, n, report)
		}
	}
	if strings.Contains(report, "--quiet") {
		t.Errorf("optional flag reported:\n%s", report)
	}
	if !strings.HasPrefix(report, "Some errors occurred in command cook:") {
		t.Errorf("report headline:\n%s", report)
	}
}

func TestVariadicFailuresFolded(t *testing.T) {
	order := MustNew(CommandArg{
		Name: "order",
		Parameters: []ParameterArg{
			{Name: "toppings", Variadic: true, Validator: AllowedValues("ham", "olive", "mushroom")},
		},
	})
	attach(order, true)

	_, err := order.Run(context.Background(), []string{"ham", "pineapple", "olive", "banana", "kiwi"})
	verr := asValidationError(t, err)
	want := "An error occurred in command order:\n" +
		"    Some values provided for [toppings...] are not valid: pineapple, banana, kiwi.\n" +
		"    Allowed values: ham, olive, mushroom."
	if got := verr.Error(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}

	_, err = order.Run(context.Background(), []string{"ham", "pineapple"})
	want = "An error occurred in command order:\n" +
		"    pineapple is not a correct value for [toppings...].\n" +
		"    Allowed values: ham, olive, mushroom."
	if got := asValidationError(t, err).Error(); got != want {
		t.Errorf("single failure report = %q, want %q", got, want)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	arg := CommandArg{
		Name: "pizza",
		Options: []OptionArg{
			{Short: "t", Long: "tomato"},
			{Short: "x", Long: "extra", Parameter: &ParameterArg{Name: "extra", Variadic: true}},
		},
		SubCommands: []CommandArg{{
			Name:       "order",
			Parameters: []ParameterArg{{Name: "size"}, {Name: "notes", Variadic: true}},
		}},
	}
	argv := []string{"node", "pizza", "-t", "-x", "ham", "--extra", "egg", "order", "large", "hot", "fast"}

	a, b := MustNew(arg), MustNew(arg)
	attach(a, true)
	attach(b, true)
	gotA, errA := a.Parse(ctx, argv)
	gotB, errB := b.Parse(ctx, argv)
	if errA != nil || errB != nil {
		t.Fatalf("Parse errors: %v, %v", errA, errB)
	}
	if diff := cmp.Diff(gotA, gotB); diff != "" {
		t.Errorf("independent trees disagree (-a +b):\n%s", diff)
	}

	again, err := a.Parse(ctx, argv)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(gotA, again); diff != "" {
		t.Errorf("reparse disagrees (-first +second):\n%s", diff)
	}

	want := Values{
		ParentKey: Values{"tomato": true, "extra": []string{"ham", "egg"}},
		"size":    "large",
		"notes":   []string{"hot", "fast"},
	}
	if diff := cmp.Diff(want, gotA); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyArgv(t *testing.T) {
	c := MustNew(CommandArg{
		Name:       "pizza",
		Options:    []OptionArg{{Short: "t", Long: "tomato"}},
		Parameters: []ParameterArg{{Name: "size"}, {Name: "extras", Variadic: true}},
	})
	te := attach(c, true)
	for _, argv := range [][]string{nil, {"node"}, {"node", "pizza"}} {
		got, err := c.Parse(context.Background(), argv)
		if err != nil {
			t.Fatalf("Parse(%q): %v", argv, err)
		}
		want := Values{"tomato": false, "size": nil, "extras": []string(nil)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", argv, diff)
		}
	}
	if te.stdout.Len()+te.stderr.Len() != 0 {
		t.Errorf("unexpected output: %q %q", te.stdout.String(), te.stderr.String())
	}
}

func TestShortOptionCluster(t *testing.T) {
	c := MustNew(CommandArg{
		Name:    "pizza",
		Options: []OptionArg{{Short: "t", Long: "tomato"}, {Short: "m", Long: "mozzarella"}},
	})
	q := newArgQueue([]string{"-tm"})
	c.resetTree()
	c.tokenize(context.Background(), q)
	if q.len() != 0 {
		t.Errorf("%d tokens left", q.len())
	}
	want := Values{"tomato": true, "mozzarella": true}
	if diff := cmp.Diff(want, c.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if len(c.tokenErrs) != 0 {
		t.Errorf("token errors: %v", c.tokenErrs)
	}
}

func TestEndOfOptions(t *testing.T) {
	c := MustNew(CommandArg{
		Name:        "cat",
		Options:     []OptionArg{{Short: "n", Long: "number"}},
		Parameters:  []ParameterArg{{Name: "files", Variadic: true}},
		SubCommands: []CommandArg{{Name: "sub"}},
	})
	attach(c, true)

	got, err := c.Run(context.Background(), []string{"-n", "--", "--weird", "-n", "sub", "--"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := Values{"number": true, "files": []string{"--weird", "-n", "sub", "--"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionConsumesNextToken(t *testing.T) {
	c := MustNew(CommandArg{
		Name: "grep",
		Options: []OptionArg{
			{Short: "e", Long: "regexp", Parameter: &ParameterArg{Name: "pattern"}},
			{Short: "i"},
		},
	})
	attach(c, true)

	got, err := c.Run(context.Background(), []string{"-e", "-i"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := Values{"regexp": "-i", "i": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionWithoutValue(t *testing.T) {
	pizza := MustNew(pizzaArg())
	attach(pizza, true)

	_, err := pizza.Run(context.Background(), []string{"-t", "-b"})
	verr := asValidationError(t, err)
	want := "An error occurred in command pizza:\n" +
		"    A value is required for -b, --base <base>.\n" +
		"    Allowed values: tomato, cream."
	if got := verr.Error(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
	errs := verr.Find(KindParameterValue)
	if len(errs) != 1 || errs[0].Value != nil {
		t.Errorf("want one parameter value error with a nil value, got %+v", errs)
	}
}

func TestOptionWithoutValueOptionalParameter(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{
			[]string{"-b"},
			"An error occurred in command pizza:\n" +
				"    A value is required for -b, --base [base].\n" +
				"    Allowed values: tomato, cream.",
		},
		{
			[]string{"-b", "tomato", "-n"},
			"An error occurred in command pizza:\n" +
				"    A value is required for -n, --name [name].",
		},
	}
	for _, tt := range tests {
		c := MustNew(CommandArg{
			Name: "pizza",
			Options: []OptionArg{
				{Short: "b", Long: "base", Mandatory: true, Parameter: &ParameterArg{Name: "base", Validator: AllowedValues("tomato", "cream")}},
				{Short: "n", Long: "name", Parameter: &ParameterArg{Name: "name"}},
			},
		})
		attach(c, true)

		got, err := c.Run(context.Background(), tt.args)
		if got != nil {
			t.Errorf("Run(%q) = %v, want no values", tt.args, got)
		}
		verr := asValidationError(t, err)
		if s := verr.Error(); s != tt.want {
			t.Errorf("Run(%q) report = %q, want %q", tt.args, s, tt.want)
		}
		errs := verr.Find(KindParameterValue)
		if len(errs) != 1 || errs[0].Value != nil {
			t.Errorf("Run(%q): want one parameter value error with a nil value, got %+v", tt.args, errs)
		}
	}
}

func TestTokenizationErrorsCollected(t *testing.T) {
	pizza := MustNew(pizzaArg())
	attach(pizza, true)

	_, err := pizza.Run(context.Background(), []string{"-z", "--bsae", "cream", "-b", "cream", "extra"})
	verr := asValidationError(t, err)

	var kinds []ErrorKind
	for _, e := range verr.Children {
		kinds = append(kinds, e.Kind)
	}
	wantKinds := []ErrorKind{KindUnknownOption, KindUnknownOption, KindUnexpectedParameter, KindUnexpectedParameter}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if got := verr.Children[1].Hint; got != "Did you mean --base?" {
		t.Errorf("hint = %q", got)
	}
	want := "Some errors occurred in command pizza:\n" +
		"    Unknown option z in -z\n" +
		"    Unknown option bsae in --bsae\n" +
		"    Did you mean --base?\n" +
		"    Unexpected parameter cream\n" +
		"    Unexpected parameter extra"
	if got := verr.Error(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestUnexpectedParameterHint(t *testing.T) {
	c := MustNew(CommandArg{
		Name:        "pizza",
		SubCommands: []CommandArg{{Name: "order"}, {Name: "list"}},
	})
	attach(c, true)

	_, err := c.Run(context.Background(), []string{"ordr"})
	errs := asValidationError(t, err).Find(KindUnexpectedParameter)
	if len(errs) != 1 {
		t.Fatalf("got %d unexpected parameter errors", len(errs))
	}
	if errs[0].Hint != "Did you mean order?" {
		t.Errorf("hint = %q", errs[0].Hint)
	}
}

func TestSubCommandErrorsNested(t *testing.T) {
	c := MustNew(CommandArg{
		Name:    "pizza",
		Options: []OptionArg{{Short: "t", Long: "tomato"}},
		SubCommands: []CommandArg{{
			Name:       "order",
			Parameters: []ParameterArg{{Name: "size", Mandatory: true}},
		}},
	})
	attach(c, true)

	_, err := c.Run(context.Background(), []string{"-t", "order"})
	verr := asValidationError(t, err)
	if verr.Kind != KindCommandAggregate || verr.Children[0].Kind != KindSubCommandAggregate {
		t.Errorf("kinds = %v > %v", verr.Kind, verr.Children[0].Kind)
	}
	want := "An error occurred in command pizza:\n" +
		"    An error occurred in command pizza order:\n" +
		"        The parameter <size> is mandatory for command pizza order"
	if got := verr.Error(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestActionRunsOnDeepestCommand(t *testing.T) {
	type orderKey struct{}
	var rootCalled bool
	c := MustNew(CommandArg{
		Name:    "pizza",
		Options: []OptionArg{{Short: "t", Long: "tomato"}},
		Action: func(context.Context, Values) (any, error) {
			rootCalled = true
			return nil, nil
		},
		SubCommands: []CommandArg{{
			Name:       "order",
			Parameters: []ParameterArg{{Name: "size"}},
			Action: func(ctx context.Context, v Values) (any, error) {
				size, _ := v.String("size")
				base := "plain"
				if v.Parent().Bool("tomato") {
					base = "tomato"
				}
				return ctx.Value(orderKey{}).(string) + ":" + size + ":" + base, nil
			},
		}},
	})
	attach(c, true)

	ctx := context.WithValue(context.Background(), orderKey{}, "ticket")
	got, err := c.Run(ctx, []string{"-t", "order", "large"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "ticket:large:tomato" {
		t.Errorf("result = %v", got)
	}
	if rootCalled {
		t.Error("root action called")
	}
}

func TestActionError(t *testing.T) {
	boom := errors.New("oven is cold")
	c := MustNew(CommandArg{
		Name:        "pizza",
		SubCommands: []CommandArg{{Name: "bake", Action: func(context.Context, Values) (any, error) { return nil, boom }}},
	})
	attach(c, true)

	_, err := c.Run(context.Background(), []string{"bake"})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if got, want := err.Error(), "pizza bake: oven is cold"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if !IsFault(err) {
		t.Error("IsFault = false")
	}
}

func TestHelpShortCircuits(t *testing.T) {
	t.Run("no-exit", func(t *testing.T) {
		pizza := MustNew(pizzaArg())
		te := attach(pizza, true)
		_, err := pizza.Run(context.Background(), []string{"--help", "--unknown"})
		if !errors.Is(err, ErrHelpShown) {
			t.Fatalf("error = %v, want ErrHelpShown", err)
		}
		if IsFault(err) {
			t.Error("help reported as a fault")
		}
		if te.stdout.String() != pizza.RenderHelp(PlainRenderConfig()) {
			t.Errorf("stdout = %q", te.stdout.String())
		}
		if te.stderr.Len() != 0 {
			t.Errorf("stderr = %q", te.stderr.String())
		}
	})
	t.Run("sub-command", func(t *testing.T) {
		arg := pizzaArg()
		arg.SubCommands = []CommandArg{{Name: "order", Description: "Order it"}}
		pizza := MustNew(arg)
		te := attach(pizza, false)
		_, err := pizza.Run(context.Background(), []string{"order", "--help"})
		if !errors.Is(err, ErrHelpShown) {
			t.Fatalf("error = %v, want ErrHelpShown", err)
		}
		if diff := cmp.Diff([]int{0}, te.exits); diff != "" {
			t.Errorf("exit codes mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(te.stdout.String(), "Usage: pizza order [OPTIONS]") {
			t.Errorf("stdout = %q", te.stdout.String())
		}
	})
	t.Run("custom", func(t *testing.T) {
		arg := pizzaArg()
		arg.HelpOption = &OptionArg{Short: "h", Long: "aide", Description: "afficher l'aide"}
		pizza := MustNew(arg)
		te := attach(pizza, true)
		if _, err := pizza.Run(context.Background(), []string{"-h"}); !errors.Is(err, ErrHelpShown) {
			t.Fatalf("error = %v, want ErrHelpShown", err)
		}
		if !strings.Contains(te.stdout.String(), "-h, --aide") {
			t.Errorf("stdout = %q", te.stdout.String())
		}
	})
	t.Run("disabled", func(t *testing.T) {
		arg := pizzaArg()
		arg.NoHelpOption = true
		pizza := MustNew(arg)
		attach(pizza, true)
		_, err := pizza.Run(context.Background(), []string{"--help"})
		if errs := asValidationError(t, err).Find(KindUnknownOption); len(errs) != 1 {
			t.Errorf("got %d unknown option errors", len(errs))
		}
	})
}

func TestSiblingDependentValidator(t *testing.T) {
	c := MustNew(CommandArg{
		Name: "order",
		Options: []OptionArg{{
			Long: "topping",
			Parameter: &ParameterArg{
				Name: "topping",
				Validator: ValidateWith(func(_ context.Context, v *string, siblings Values) (Result, error) {
					if v == nil {
						return Valid(), nil
					}
					size, _ := siblings.String("size")
					return Check(size != "small" || *v != "truffle"), nil
				}),
			},
		}},
		Parameters: []ParameterArg{{Name: "size", Mandatory: true}},
	})
	attach(c, true)

	if _, err := c.Run(context.Background(), []string{"--topping", "truffle", "large"}); err != nil {
		t.Errorf("large truffle: %v", err)
	}
	_, err := c.Run(context.Background(), []string{"--topping", "truffle", "small"})
	want := "An error occurred in command order:\n" +
		"    truffle is not a correct value for --topping [topping]."
	if got := asValidationError(t, err).Error(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestProbedAllowList(t *testing.T) {
	var calls atomic.Int32
	c := MustNew(CommandArg{
		Name: "serve",
		Parameters: []ParameterArg{{
			Name:     "regions",
			Variadic: true,
			Validator: ValidateWith(func(context.Context, *string, Values) (Result, error) {
				calls.Add(1)
				return OneOf("eu", "us"), nil
			}),
		}},
	})
	attach(c, true)

	_, err := c.Run(context.Background(), []string{"eu", "ap", "us", "sa"})
	want := "An error occurred in command serve:\n" +
		"    Some values provided for [regions...] are not valid: ap, sa.\n" +
		"    Allowed values: eu, us."
	if got := asValidationError(t, err).Error(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("validator called %d times, want 1", n)
	}
}

func TestCustomValidationError(t *testing.T) {
	c := MustNew(CommandArg{
		Name: "slice",
		Parameters: []ParameterArg{{
			Name: "count",
			Validator: ValidateWith(func(_ context.Context, v *string, _ Values) (Result, error) {
				if v != nil && *v == "7" {
					return Result{}, NewValidationError("7 slices cannot be cut evenly", "Try 6 or 8.")
				}
				return Valid(), nil
			}),
		}},
	})
	attach(c, true)

	_, err := c.Run(context.Background(), []string{"7"})
	want := "An error occurred in command slice:\n" +
		"    7 slices cannot be cut evenly\n" +
		"    Try 6 or 8."
	if got := asValidationError(t, err).Error(); got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestValidatorFaultPropagates(t *testing.T) {
	boom := errors.New("catalog unavailable")
	c := MustNew(CommandArg{
		Name: "order",
		SubCommands: []CommandArg{{
			Name: "add",
			Parameters: []ParameterArg{{
				Name: "item",
				Validator: ValidateWith(func(_ context.Context, v *string, _ Values) (Result, error) {
					if v == nil {
						return Valid(), nil
					}
					return Result{}, boom
				}),
			}},
		}},
	})
	te := attach(c, false)

	_, err := c.Run(context.Background(), []string{"add", "ham"})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if !IsFault(err) {
		t.Error("IsFault = false")
	}
	if te.stderr.Len() != 0 || len(te.exits) != 0 {
		t.Errorf("fault was reported: stderr %q, exits %v", te.stderr.String(), te.exits)
	}
}

func TestDefinitionErrors(t *testing.T) {
	tests := []struct {
		name string
		arg  CommandArg
	}{
		{"no name", CommandArg{}},
		{"option without names", CommandArg{Name: "c", Options: []OptionArg{{Description: "x"}}}},
		{"long short name", CommandArg{Name: "c", Options: []OptionArg{{Short: "ab"}}}},
		{"one letter long name", CommandArg{Name: "c", Options: []OptionArg{{Long: "a"}}}},
		{"duplicate short", CommandArg{Name: "c", Options: []OptionArg{{Short: "a"}, {Short: "a", Long: "all"}}}},
		{"duplicate long", CommandArg{Name: "c", Options: []OptionArg{{Long: "all"}, {Short: "a", Long: "all"}}}},
		{"help clash", CommandArg{Name: "c", Options: []OptionArg{{Long: "help"}}}},
		{"parameter after variadic", CommandArg{Name: "c", Parameters: []ParameterArg{{Name: "a", Variadic: true}, {Name: "b"}}}},
		{"name shared by option and parameter", CommandArg{Name: "c", Options: []OptionArg{{Long: "file"}}, Parameters: []ParameterArg{{Name: "file"}}}},
		{"reserved parameter name", CommandArg{Name: "c", Parameters: []ParameterArg{{Name: ParentKey}}}},
		{"unnamed parameter", CommandArg{Name: "c", Parameters: []ParameterArg{{}}}},
		{"duplicate sub-command", CommandArg{Name: "c", SubCommands: []CommandArg{{Name: "s"}, {Name: "s"}}}},
		{"nested", CommandArg{Name: "c", SubCommands: []CommandArg{{Name: "s", Options: []OptionArg{{}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.arg)
			if !errors.Is(err, ErrDefinition) {
				t.Fatalf("New = %v, %v; want ErrDefinition", c, err)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew did not panic")
		}
	}()
	MustNew(CommandArg{})
}

func TestFluentConstruction(t *testing.T) {
	c := MustNew(CommandArg{Name: "pizza", NoHelpOption: true})
	if _, err := c.AddOption(OptionArg{Short: "t", Long: "tomato"}); err != nil {
		t.Fatal(err)
	}
	p, err := c.AddParameter(ParameterArg{Name: "size"})
	if err != nil {
		t.Fatal(err)
	}
	p.SetDescription("small, medium or large")
	order := MustNew(CommandArg{Name: "order"})
	if err := c.AddSubCommand(order); err != nil {
		t.Fatal(err)
	}
	c.SetDescription("Create your own pizza").SetLongDescription("Bake it yourself.")
	attach(c, true)

	got, err := c.Run(context.Background(), []string{"medium", "-t"})
	if err != nil {
		t.Fatal(err)
	}
	want := Values{"tomato": true, "size": "medium"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if c.Parameters()[0].Description() != "small, medium or large" {
		t.Errorf("description = %q", c.Parameters()[0].Description())
	}
	if c.HelpOption() != nil {
		t.Error("help option present")
	}
}

package synth

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"fixture-generator/descriptor"
	"fixture-generator/primitive"
	"fixture-generator/store"
	"fixture-generator/strategy"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int32
	Y int32
}

type plot struct {
	Title  string
	Origin point
}

type withFunc struct {
	Name     string
	Callback func()
}

type withChan struct {
	Events []chan int
}

type withSecret struct {
	Name   string
	secret string
}

type taggedGen struct {
	Kept    string
	Skipped string `gen:"-"`
}

type account struct {
	ID     string
	marker string
}

func newAccount() account { return account{marker: "first"} }

func newAccountAgain() *account { return &account{marker: "second"} }

func newBrokenAccount() (*account, error) { return nil, nil }

var errBoom = errors.New("boom")

func TestMake_Leaves(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	for range 200 {
		i8 := MustMake[int8](s)
		assert.Less(t, int(i8), 127)

		i16 := MustMake[int16](s)
		assert.Less(t, int(i16), 32767)

		f32 := MustMake[float32](s)
		assert.GreaterOrEqual(t, f32, float32(0))
		assert.Less(t, f32, float32(1))

		f64 := MustMake[float64](s)
		assert.GreaterOrEqual(t, f64, 0.0)
		assert.Less(t, f64, 1.0)

		c := MustMake[primitive.Char](s)
		assert.GreaterOrEqual(t, int(c), strategy.CharMin)
		assert.LessOrEqual(t, int(c), strategy.CharMax)

		str := MustMake[string](s)
		assert.Equal(t, strategy.StringLength, utf8.RuneCountInString(str))
		for _, r := range str {
			assert.True(t, strings.ContainsRune(strategy.StringAlphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestMake_Containers(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	list := MustMake[[]string](s)
	assert.Len(t, list, 1)

	set := MustMake[map[string]struct{}](s)
	assert.Len(t, set, 1)

	dict := MustMake[map[int64]string](s)
	require.Len(t, dict, 1)
	for _, v := range dict {
		assert.Len(t, v, strategy.StringLength)
	}

	nested := MustMake[[][]int32](s)
	require.Len(t, nested, 1)
	assert.Len(t, nested[0], 1)

	shelf := MustMake[store.Shelf](s)
	for _, c := range shelf.Code {
		assert.NotZero(t, c, "array slots must all be filled:\n%s", spew.Sdump(shelf))
	}
}

func TestMake_Order(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	order, err := Make[store.Order](s)
	require.NoError(t, err)

	require.Len(t, order.Items, 1, spew.Sdump(order))
	assert.Len(t, order.Items[0].Name, strategy.StringLength)
	assert.Len(t, order.Notes, 1)
	assert.Len(t, string(order.Status), strategy.StringLength)
	assert.False(t, order.OrderedAt.IsZero())
	assert.GreaterOrEqual(t, order.Window, time.Duration(0))
	assert.Less(t, order.Window, 24*time.Hour)
}

func TestMake_DistinctValues(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	first := MustMake[store.Product](s)
	second := MustMake[store.Product](s)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first, second)
}

func TestMake_PointersAreNeverNil(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	for range 50 {
		customer := MustMake[store.Customer](s)
		require.NotNil(t, customer.Address)
		assert.Len(t, *customer.Address, strategy.StringLength)
		assert.Len(t, customer.Tags, 1)
	}

	ptr := MustMake[*store.OrderItem](s)
	require.NotNil(t, ptr)
	assert.NotEmpty(t, ptr.Name)
}

func TestMake_UnsupportedType(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	v, err := Make[withFunc](s)
	require.Error(t, err)
	assert.Equal(t, withFunc{}, v)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	var unsupported UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "func()", unsupported.Type)
	assert.Equal(t, "fixture-generator/synth.withFunc.Callback", unsupported.Path)
	assert.Equal(t, `synth: unsupported type "func()" at fixture-generator/synth.withFunc.Callback`, err.Error())

	_, err = Make[withChan](s)
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "chan int", unsupported.Type)
	assert.Equal(t, "fixture-generator/synth.withChan.Events[]", unsupported.Path)

	reader, err := Make[io.Reader](s)
	assert.Nil(t, reader)
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "io.Reader", unsupported.Type)
	assert.Equal(t, "io.Reader", unsupported.Path)

	_, err = Make[[]error](s)
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "error", unsupported.Type)
	assert.Equal(t, "[]error[]", unsupported.Path)

	_, err = s.Synthesize(nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	assert.Panics(t, func() { MustMake[func()](s) })
}

func TestRegister_OverridesBuiltin(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())
	Register(s, strategy.Func[string](func() (string, error) { return "fixed", nil }))

	order := MustMake[store.Order](s)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "fixed", order.Items[0].Name)

	// named basics follow the strategy of their underlying kind
	assert.Equal(t, store.OrderStatus("fixed"), order.Status)
}

func TestRegister_CompositeSentinel(t *testing.T) {
	t.Parallel()

	sentinel := point{X: -1, Y: -1}

	s := New(DefaultConfig())
	Register(s, strategy.Func[point](func() (point, error) { return sentinel, nil }))

	p := MustMake[plot](s)
	assert.Equal(t, sentinel, p.Origin)
	assert.NotEmpty(t, p.Title)

	s.RegisterID(descriptor.IDOf(reflect.TypeFor[withFunc]()), strategy.Fixed(withFunc{Name: "stub"}))
	assert.Equal(t, "stub", MustMake[withFunc](s).Name)
}

func TestRegister_IsolatedPerSynthesizer(t *testing.T) {
	t.Parallel()

	first := New(DefaultConfig())
	second := New(DefaultConfig())
	Register(first, strategy.Func[int64](func() (int64, error) { return 7, nil }))

	assert.Equal(t, int64(7), MustMake[int64](first))
	assert.Len(t, first.Registry().IDs(), len(strategy.Builtins()))

	others := map[int64]struct{}{}
	for range 5 {
		others[MustMake[int64](second)] = struct{}{}
	}
	assert.Greater(t, len(others), 1, "second synthesizer must keep the random strategy")
}

func TestMake_StrategyErrorIsUnmodified(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())
	Register(s, strategy.Func[int64](func() (int64, error) { return 0, errBoom }))

	v, err := Make[store.Order](s)
	require.Error(t, err)
	assert.Same(t, errBoom, err)
	assert.Zero(t, v.ID)
}

func TestMake_RejectsValuesThatDoNotFit(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())
	s.RegisterID("int8", strategy.Fixed(1000))
	s.RegisterID("int32", strategy.Fixed(3.7))

	_, err := Make[int8](s)
	assert.ErrorIs(t, err, descriptor.ErrValueMismatch)

	_, err = Make[point](s)
	require.ErrorIs(t, err, descriptor.ErrValueMismatch)
	assert.ErrorContains(t, err, "synth.point.X")

	_, err = Make[store.Shelf](s)
	assert.ErrorIs(t, err, descriptor.ErrValueMismatch)

	s.RegisterID("int8", strategy.Fixed(-7))
	assert.Equal(t, int8(-7), MustMake[int8](s))
}

func TestAs(t *testing.T) {
	t.Parallel()

	v, err := as[string]("x")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	_, err = as[int](int8(1))
	assert.ErrorIs(t, err, descriptor.ErrValueMismatch)
	assert.EqualError(t, err, "synth: value is not assignable to the declared type: got int8 for int")

	ptr, err := as[*store.Order](nil)
	assert.ErrorIs(t, err, descriptor.ErrValueMismatch)
	assert.Nil(t, ptr)

	reader, err := as[io.Reader](nil)
	require.NoError(t, err)
	assert.Nil(t, reader)
}

func TestMake_RecursionLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxDepth = 5

	s := New(cfg)

	_, err := Make[store.Category](s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecursionLimit)

	var limit RecursionLimitError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, 5, limit.Limit)
	assert.True(t, strings.HasPrefix(limit.Path, "fixture-generator/store.Category.*Parent"), limit.Path)

	// depth is enough for non-recursive types
	order := MustMake[store.Order](s)
	assert.Len(t, order.Items, 1)
}

func TestMake_SkipTag(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())
	customer := MustMake[store.Customer](s)
	assert.Empty(t, customer.Password)

	cfg := DefaultConfig()
	cfg.TagName = "gen"

	tagged := MustMake[taggedGen](New(cfg))
	assert.NotEmpty(t, tagged.Kept)
	assert.Empty(t, tagged.Skipped)
}

func TestMake_UnexportedFields(t *testing.T) {
	t.Parallel()

	plain := MustMake[withSecret](New(DefaultConfig()))
	assert.NotEmpty(t, plain.Name)
	assert.Empty(t, plain.secret)

	cfg := DefaultConfig()
	cfg.IncludeUnexported = true

	full := MustMake[withSecret](New(cfg))
	assert.NotEmpty(t, full.Name)
	assert.Len(t, full.secret, strategy.StringLength)
}

func TestRegisterConstructor(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())
	require.NoError(t, s.RegisterConstructor(newAccount))
	require.NoError(t, s.RegisterConstructor(newAccountAgain))

	acc := MustMake[account](s)
	assert.Equal(t, "first", acc.marker)
	assert.NotEmpty(t, acc.ID)

	require.NoError(t, s.RegisterConstructor(store.NewCustomer))
	customer, err := Make[store.Customer](s)
	require.NoError(t, err)
	assert.Len(t, customer.Email, strategy.StringLength)
}

func TestRegisterConstructor_Errors(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	err := s.RegisterConstructor(42)
	require.ErrorIs(t, err, descriptor.ErrConstructorNotAFunction)
	assert.Contains(t, err.Error(), "register constructor")

	require.ErrorIs(t, s.RegisterConstructor(func() {}), descriptor.ErrNotAConstructor)
	require.ErrorIs(t, s.RegisterConstructor(func() **account { return nil }), descriptor.ErrDoublePointer)
}

func TestMake_ConstructorErrors(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())
	require.NoError(t, s.RegisterConstructor(func() (*store.Customer, error) { return nil, errBoom }))

	_, err := Make[store.Customer](s)
	assert.Same(t, errBoom, err)

	nilCtor := New(DefaultConfig())
	require.NoError(t, nilCtor.RegisterConstructor(newBrokenAccount))

	_, err = Make[account](nilCtor)
	assert.ErrorIs(t, err, descriptor.ErrNilInstance)
}

func TestMake_ConstructorParams(t *testing.T) {
	t.Parallel()

	var got string

	s := New(DefaultConfig())
	require.NoError(t, s.RegisterConstructor(func(name string, qty int16) store.OrderItem {
		got = name
		return store.OrderItem{Quantity: qty}
	}))

	MustMake[store.OrderItem](s)
	assert.Len(t, got, strategy.StringLength)
}

func TestMake_LogsDispatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := New(cfg)
	require.NoError(t, s.RegisterConstructor(newAccount))
	MustMake[account](s)

	out := buf.String()
	assert.Contains(t, out, "rule=DispatcherComposite")
	assert.Contains(t, out, "first constructor selected")
	assert.Contains(t, out, "path=fixture-generator/synth.account.ID")
}

func TestRegisterConstructor_NamedBasicIgnored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := New(cfg)
	require.NoError(t, s.RegisterConstructor(func() store.OrderStatus { return store.StatusPaid }))

	status := MustMake[store.OrderStatus](s)
	assert.Len(t, string(status), strategy.StringLength)
	assert.Contains(t, buf.String(), "constructor ignored for basic type")
	assert.Contains(t, buf.String(), "rule=DispatcherPrimitive")
}

func TestMake_Concurrent(t *testing.T) {
	t.Parallel()

	s := New(DefaultConfig())

	var wg sync.WaitGroup
	results := make([]store.Order, 16)

	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = MustMake[store.Order](s)
		}()
	}

	wg.Wait()

	for _, order := range results {
		assert.Len(t, order.Items, 1)
	}
}

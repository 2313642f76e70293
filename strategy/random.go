package strategy

import (
	"math"
	"math/rand/v2"
	"time"

	"fixture-generator/descriptor"
	"fixture-generator/primitive"

	"github.com/google/uuid"
)

const (
	// StringLength is the length of generated strings.
	StringLength = 10
	// StringAlphabet holds the characters generated strings are drawn from.
	StringAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// CharMin and CharMax bound generated characters (printable ASCII, inclusive).
	CharMin = 33
	CharMax = 126
)

var (
	timeMin = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	timeMax = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
)

var builtins = map[primitive.KindEnum]Generator{
	primitive.KindInt32:   Erase(Func[int32](RandomInt32)),
	primitive.KindInt64:   Erase(Func[int64](RandomInt64)),
	primitive.KindFloat32: Erase(Func[float32](RandomFloat32)),
	primitive.KindFloat64: Erase(Func[float64](RandomFloat64)),
	primitive.KindInt8:    Erase(Func[int8](RandomInt8)),
	primitive.KindInt16:   Erase(Func[int16](RandomInt16)),
	primitive.KindBool:    Erase(Func[bool](RandomBool)),
	primitive.KindString:  Erase(Func[string](RandomString)),
	primitive.KindChar:    Erase(Func[primitive.Char](RandomChar)),
	primitive.KindUUID:    Erase(Func[uuid.UUID](RandomUUID)),

	primitive.KindInt:      Erase(Func[int](RandomInt)),
	primitive.KindUint:     Erase(Func[uint](RandomUint)),
	primitive.KindUint8:    Erase(Func[uint8](RandomUint8)),
	primitive.KindUint16:   Erase(Func[uint16](RandomUint16)),
	primitive.KindUint32:   Erase(Func[uint32](RandomUint32)),
	primitive.KindUint64:   Erase(Func[uint64](RandomUint64)),
	primitive.KindTime:     Erase(Func[time.Time](RandomTime)),
	primitive.KindDuration: Erase(Func[time.Duration](RandomDuration)),
}

// Builtins returns a fresh set of the built-in leaf generators keyed by identity.
// Every primitive kind has one.
func Builtins() map[string]Generator {
	res := make(map[string]Generator, len(builtins))
	for k := primitive.KindEnum(1); int(k) < primitive.KindTotal; k++ {
		res[descriptor.IDOf(k.Type())] = builtins[k]
	}

	return res
}

// RandomInt32 draws over the full signed 32-bit range.
func RandomInt32() (int32, error) { return int32(rand.Uint32()), nil }

// RandomInt64 draws over the full signed 64-bit range.
func RandomInt64() (int64, error) { return int64(rand.Uint64()), nil }

// RandomFloat32 draws from [0, 1).
func RandomFloat32() (float32, error) { return rand.Float32(), nil }

// RandomFloat64 draws from [0, 1).
func RandomFloat64() (float64, error) { return rand.Float64(), nil }

// RandomInt8 draws from [math.MinInt8, math.MaxInt8), the upper bound is excluded.
func RandomInt8() (int8, error) {
	return int8(math.MinInt8 + rand.IntN(math.MaxInt8-math.MinInt8)), nil
}

// RandomInt16 draws from [math.MinInt16, math.MaxInt16), the upper bound is excluded.
func RandomInt16() (int16, error) {
	return int16(math.MinInt16 + rand.IntN(math.MaxInt16-math.MinInt16)), nil
}

// RandomChar draws a printable ASCII character from [CharMin, CharMax].
func RandomChar() (primitive.Char, error) {
	return primitive.Char(CharMin + rand.IntN(CharMax-CharMin+1)), nil
}

func RandomBool() (bool, error) { return rand.IntN(2) == 1, nil }

// RandomString draws StringLength characters from StringAlphabet.
func RandomString() (string, error) {
	buf := make([]byte, StringLength)
	for i := range buf {
		buf[i] = StringAlphabet[rand.IntN(len(StringAlphabet))]
	}

	return string(buf), nil
}

// RandomUUID returns a version 4 UUID.
func RandomUUID() (uuid.UUID, error) { return uuid.New(), nil }

func RandomInt() (int, error) { return int(rand.Uint64()), nil }

func RandomUint() (uint, error) { return uint(rand.Uint64()), nil }

func RandomUint8() (uint8, error) { return uint8(rand.Uint32()), nil }

func RandomUint16() (uint16, error) { return uint16(rand.Uint32()), nil }

func RandomUint32() (uint32, error) { return rand.Uint32(), nil }

func RandomUint64() (uint64, error) { return rand.Uint64(), nil }

// RandomTime draws a whole second between 1970 and 2100, in UTC.
func RandomTime() (time.Time, error) {
	return time.Unix(timeMin+rand.Int64N(timeMax-timeMin), 0).UTC(), nil
}

// RandomDuration draws from [0, 24h).
func RandomDuration() (time.Duration, error) {
	return time.Duration(rand.Int64N(int64(24 * time.Hour))), nil
}

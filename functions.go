package lg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/gval"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

///////////////////////////////////////////////////////////////////////////////
// FUNCTION REGISTRY
///////////////////////////////////////////////////////////////////////////////

var functionRegistry = map[string]Func{}
var regMutex sync.RWMutex

// Func is a helper callable from ${...} expressions.
type Func func(args ...any) (any, error)

// RegisterFunction makes f callable by name from expressions. Helpers shadow
// templates of the same name. Only expressions compiled after the call see it.
func RegisterFunction(name string, f Func) {
	regMutex.Lock()
	defer regMutex.Unlock()
	functionRegistry[name] = f
}

func hasFunction(name string) bool {
	regMutex.RLock()
	defer regMutex.RUnlock()
	_, ok := functionRegistry[name]
	return ok
}

func helperLanguage() gval.Language {
	regMutex.RLock()
	defer regMutex.RUnlock()

	langs := make([]gval.Language, 0, len(functionRegistry)+1)
	langs = append(langs, gval.Full())
	for name, f := range functionRegistry {
		langs = append(langs, gval.Function(name, (func(...interface{}) (interface{}, error))(f)))
	}
	return gval.NewLanguage(langs...)
}

///////////////////////////////////////////////////////////////////////////////
// DEFAULT FUNCTIONS REGISTERED AT INIT
///////////////////////////////////////////////////////////////////////////////

func init() {
	RegisterFunction("upper", func(args ...any) (any, error) {
		return strings.ToUpper(toText(arg(args, 0))), nil
	})
	RegisterFunction("lower", func(args ...any) (any, error) {
		return strings.ToLower(toText(arg(args, 0))), nil
	})
	RegisterFunction("title", func(args ...any) (any, error) {
		return cases.Title(language.Und).String(toText(arg(args, 0))), nil
	})
	RegisterFunction("number", func(args ...any) (any, error) {
		return formatNumber(arg(args, 0), toText(arg(args, 1)))
	})
	RegisterFunction("currency", func(args ...any) (any, error) {
		return formatCurrency(arg(args, 0), toText(arg(args, 1)))
	})
	RegisterFunction("dateFormat", func(args ...any) (any, error) {
		return formatDate(arg(args, 0), toText(arg(args, 1)))
	})
	RegisterFunction("join", func(args ...any) (any, error) {
		items, err := cast.ToStringSliceE(arg(args, 0))
		if err != nil {
			return nil, fmt.Errorf("join: %w", err)
		}
		sep := ", "
		if len(args) > 1 {
			sep = toText(args[1])
		}
		return strings.Join(items, sep), nil
	})
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// NUMBER / CURRENCY / DATE
///////////////////////////////////////////////////////////////////////////////

func formatDate(v any, layout string) (string, error) {
	if layout == "" {
		layout = "2006-01-02"
	}
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout), nil
	case *time.Time:
		return t.Format(layout), nil
	case string:
		tt, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return "", err
		}
		return tt.Format(layout), nil
	default:
		return "", fmt.Errorf("not a time: %v", v)
	}
}

func formatNumber(v any, precision string) (string, error) {
	f, err := toFloat(v)
	if err != nil {
		return "", fmt.Errorf("number: %w", err)
	}

	p := 0
	if precision != "" {
		pi, err := strconv.Atoi(precision)
		if err != nil {
			return "", fmt.Errorf("number: invalid precision %q", precision)
		}
		p = pi
	}

	s := strconv.FormatFloat(f, 'f', p, 64)
	return addThousandsSep(s), nil
}

func formatCurrency(v any, symbol string) (string, error) {
	if symbol == "" {
		symbol = "$"
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, sym := range []string{"$", "¥", "€", "£", symbol} {
			s = strings.TrimPrefix(s, sym)
		}
		v = s
	}
	f, err := toFloat(v)
	if err != nil {
		return "", fmt.Errorf("currency: %w", err)
	}
	return symbol + addThousandsSep(strconv.FormatFloat(f, 'f', 2, 64)), nil
}

func toFloat(v any) (float64, error) {
	if s, ok := v.(string); ok {
		v = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	return cast.ToFloat64E(v)
}

func addThousandsSep(s string) string {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	intPart := parts[0]

	var buf bytes.Buffer
	for i, c := range intPart {
		if i != 0 && (len(intPart)-i)%3 == 0 {
			buf.WriteRune(',')
		}
		buf.WriteRune(c)
	}

	if len(parts) > 1 {
		buf.WriteRune('.')
		buf.WriteString(parts[1])
	}

	if neg {
		return "-" + buf.String()
	}
	return buf.String()
}

package debugger

import (
	"testing"

	"github.com/knuth-taocp/mixes/mix"
)

func TestExpressionEvaluator_Numbers(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := make(map[string]uint16)

	tests := []struct {
		name string
		expr string
		want int64
	}{
		{"Decimal", "42", 42},
		{"Zero", "0", 0},
		{"Negative", "-1", -1},
		{"Large", "999999", 999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.EvaluateExpression(tt.expr, machine, symbols)
			if err != nil {
				t.Fatalf("EvaluateExpression() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateExpression() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpressionEvaluator_Registers(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := make(map[string]uint16)

	machine.RA.FromInt64(100)
	machine.RX.FromInt64(200)
	machine.RI[1].FromInt64(5)
	machine.RJ.FromInt64(3000)
	machine.PC = 3000

	tests := []struct {
		name string
		expr string
		want int64
	}{
		{"rA", "rA", 100},
		{"rX", "rX", 200},
		{"rI1", "rI1", 5},
		{"rJ", "rJ", 3000},
		{"pc", "pc", 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.EvaluateExpression(tt.expr, machine, symbols)
			if err != nil {
				t.Fatalf("EvaluateExpression() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateExpression() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpressionEvaluator_Symbols(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := map[string]uint16{
		"main": 1000,
		"loop": 2000,
		"done": 3000,
	}

	tests := []struct {
		name string
		expr string
		want int64
	}{
		{"main", "main", 1000},
		{"loop", "loop", 2000},
		{"done", "done", 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.EvaluateExpression(tt.expr, machine, symbols)
			if err != nil {
				t.Fatalf("EvaluateExpression() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateExpression() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpressionEvaluator_Memory(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()

	dataAddr := uint16(2000)
	symbols := map[string]uint16{
		"data": dataAddr,
	}

	w1 := mix.NewFullWord()
	w1.FromInt64(12345)
	machine.Memory.Write(dataAddr, w1)

	w2 := mix.NewFullWord()
	w2.FromInt64(-6789)
	machine.Memory.Write(dataAddr+1, w2)

	tests := []struct {
		name string
		expr string
		want int64
	}{
		{"Bracket notation", "[2000]", 12345},
		{"Star notation", "*2001", -6789},
		{"Symbol in brackets", "[data]", 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.EvaluateExpression(tt.expr, machine, symbols)
			if err != nil {
				t.Fatalf("EvaluateExpression() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateExpression() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpressionEvaluator_Arithmetic(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := make(map[string]uint16)

	tests := []struct {
		name string
		expr string
		want int64
	}{
		{"Addition", "10 + 20", 30},
		{"Subtraction", "50 - 20", 30},
		{"Multiplication", "5 * 6", 30},
		{"Division", "60 / 2", 30},
		{"ChainedSubtractionIsLeftAssociative", "10 - 2 - 3", 5},
		{"ChainedDivisionIsLeftAssociative", "100 / 10 / 2", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.EvaluateExpression(tt.expr, machine, symbols)
			if err != nil {
				t.Fatalf("EvaluateExpression() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EvaluateExpression() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpressionEvaluator_ValueHistory(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := make(map[string]uint16)

	val1, _ := eval.EvaluateExpression("42", machine, symbols)
	val2, _ := eval.EvaluateExpression("100", machine, symbols)

	if eval.GetValueNumber() != 2 {
		t.Errorf("ValueNumber = %d, want 2", eval.GetValueNumber())
	}

	got1, err := eval.GetValue(1)
	if err != nil {
		t.Fatalf("GetValue(1) error = %v", err)
	}
	if got1 != val1 {
		t.Errorf("GetValue(1) = %d, want %d", got1, val1)
	}

	got2, err := eval.GetValue(2)
	if err != nil {
		t.Fatalf("GetValue(2) error = %v", err)
	}
	if got2 != val2 {
		t.Errorf("GetValue(2) = %d, want %d", got2, val2)
	}

	_, err = eval.GetValue(999)
	if err == nil {
		t.Error("Expected error for invalid value number")
	}
}

func TestExpressionEvaluator_BooleanEvaluation(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := make(map[string]uint16)

	machine.RA.FromInt64(42)

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"Zero is false", "0", false},
		{"Non-zero is true", "42", true},
		{"Register non-zero", "rA", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.Evaluate(tt.expr, machine, symbols)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpressionEvaluator_Errors(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := make(map[string]uint16)

	tests := []struct {
		name string
		expr string
	}{
		{"Empty expression", ""},
		{"Unknown symbol", "unknown_symbol"},
		{"Division by zero", "10 / 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval.EvaluateExpression(tt.expr, machine, symbols)
			if err == nil {
				t.Error("Expected error but got none")
			}
		})
	}
}

func TestExpressionEvaluator_Reset(t *testing.T) {
	eval := NewExpressionEvaluator()
	machine := mix.NewVM()
	symbols := make(map[string]uint16)

	eval.EvaluateExpression("42", machine, symbols)  //nolint:errcheck
	eval.EvaluateExpression("100", machine, symbols) //nolint:errcheck

	if eval.GetValueNumber() != 2 {
		t.Error("Value number should be 2 before reset")
	}

	eval.Reset()

	if eval.GetValueNumber() != 0 {
		t.Error("Value number should be 0 after reset")
	}

	if len(eval.valueHistory) != 0 {
		t.Error("Value history should be empty after reset")
	}
}

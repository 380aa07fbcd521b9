package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knuth-taocp/mixes/mix"
)

// ExpressionEvaluator evaluates expressions in debugger commands
type ExpressionEvaluator struct {
	valueHistory []int64 // History of evaluated values
	valueNumber  int     // Current value number for $1, $2, etc.
}

// NewExpressionEvaluator creates a new expression evaluator
func NewExpressionEvaluator() *ExpressionEvaluator {
	return &ExpressionEvaluator{
		valueHistory: make([]int64, 0),
		valueNumber:  0,
	}
}

// EvaluateExpression evaluates an expression and returns the result
func (e *ExpressionEvaluator) EvaluateExpression(expr string, machine *mix.VM, symbols map[string]uint16) (int64, error) {
	result, err := e.evaluate(expr, machine, symbols)
	if err != nil {
		return 0, err
	}

	// Store in history
	e.valueHistory = append(e.valueHistory, result)
	e.valueNumber = len(e.valueHistory)

	return result, nil
}

// Evaluate evaluates an expression and returns a boolean result (for conditions)
func (e *ExpressionEvaluator) Evaluate(expr string, machine *mix.VM, symbols map[string]uint16) (bool, error) {
	result, err := e.evaluate(expr, machine, symbols)
	if err != nil {
		return false, err
	}

	return result != 0, nil
}

// GetValueNumber returns the current value number
func (e *ExpressionEvaluator) GetValueNumber() int {
	return e.valueNumber
}

// GetValue returns a value from history by number
func (e *ExpressionEvaluator) GetValue(number int) (int64, error) {
	if number < 1 || number > len(e.valueHistory) {
		return 0, fmt.Errorf("value $%d not in history", number)
	}

	return e.valueHistory[number-1], nil
}

// evaluate is the main evaluation logic. Unlike MIXAL's own strictly
// left-to-right grammar, debugger expressions accept ordinary
// arithmetic precedence since they are typed interactively, not
// assembled.
func (e *ExpressionEvaluator) evaluate(expr string, machine *mix.VM, symbols map[string]uint16) (int64, error) {
	expr = strings.TrimSpace(expr)

	if expr == "" {
		return 0, fmt.Errorf("empty expression")
	}

	// Try to evaluate as simple atom first
	if val, err := e.trySimpleEval(expr, machine, symbols); err == nil {
		return val, nil
	}

	// Handle binary operations (simplified parser).
	// Look for operators with whitespace around them to avoid matching
	// inside a negative numeric literal like "-5".
	operators := []string{"+", "-", "*", "/"}
	for _, op := range operators {
		patterns := []string{
			" " + op + " ",
			" " + op,
			op + " ",
		}

		for _, pattern := range patterns {
			// Split on the last occurrence so a chain like "10 - 2 - 3"
			// peels off its rightmost term first, giving left-associative
			// evaluation instead of grouping the tail first.
			idx := strings.LastIndex(expr, pattern)
			if idx < 0 {
				continue
			}

			opPos := idx
			if pattern[0] == ' ' {
				opPos++
			}

			left := strings.TrimSpace(expr[:opPos])
			right := strings.TrimSpace(expr[opPos+len(op):])

			if left == "" || right == "" {
				continue
			}

			leftVal, err := e.evaluate(left, machine, symbols)
			if err != nil {
				continue
			}

			rightVal, err := e.evaluate(right, machine, symbols)
			if err != nil {
				continue
			}

			return e.applyOperator(leftVal, rightVal, op)
		}
	}

	return 0, fmt.Errorf("invalid expression: %s", expr)
}

// trySimpleEval tries to evaluate a simple expression (number, register, memory, symbol)
func (e *ExpressionEvaluator) trySimpleEval(expr string, machine *mix.VM, symbols map[string]uint16) (int64, error) {
	expr = strings.TrimSpace(expr)

	// Memory dereference [addr] or *addr
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		addrExpr := strings.TrimSpace(expr[1 : len(expr)-1])
		return e.readMemory(addrExpr, machine, symbols)
	}

	if strings.HasPrefix(expr, "*") {
		addrExpr := strings.TrimSpace(expr[1:])
		return e.readMemory(addrExpr, machine, symbols)
	}

	// Value history reference ($1, $2, etc.)
	if strings.HasPrefix(expr, "$") {
		numStr := expr[1:]
		num, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid value reference: %s", expr)
		}

		return e.GetValue(num)
	}

	// Register
	if val, ok := registerValue(machine, expr); ok {
		return val, nil
	}
	if strings.EqualFold(expr, "pc") {
		return int64(machine.PC), nil
	}

	// Symbol
	if addr, exists := symbols[expr]; exists {
		return int64(addr), nil
	}

	// Numeric literal
	if val, err := e.parseNumber(expr); err == nil {
		return val, nil
	}

	return 0, fmt.Errorf("unknown identifier: %s", expr)
}

func (e *ExpressionEvaluator) readMemory(addrExpr string, machine *mix.VM, symbols map[string]uint16) (int64, error) {
	addrVal, err := e.evaluate(addrExpr, machine, symbols)
	if err != nil {
		return 0, err
	}
	if addrVal < 0 || addrVal >= mix.MemorySize {
		return 0, fmt.Errorf("address out of range: %d", addrVal)
	}

	word, err := machine.Memory.Read(uint16(addrVal))
	if err != nil {
		return 0, fmt.Errorf("failed to read memory at %04d: %w", addrVal, err)
	}

	v, _ := word.ToInt64()
	return v, nil
}

// parseNumber parses a numeric literal
func (e *ExpressionEvaluator) parseNumber(expr string) (int64, error) {
	expr = strings.TrimSpace(expr)

	val, err := strconv.ParseInt(expr, 10, 64)
	if err != nil {
		return 0, err
	}

	return val, nil
}

// applyOperator applies a binary operator to two values
func (e *ExpressionEvaluator) applyOperator(left, right int64, op string) (int64, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("unknown operator: %s", op)
	}
}

// Reset clears the value history
func (e *ExpressionEvaluator) Reset() {
	e.valueHistory = e.valueHistory[:0]
	e.valueNumber = 0
}

package vm

import "math"

// The arithmetic group, opcodes 004..077. Operand A comes from the indexed
// Y address, or from R2 when modifier bit 1 is set; operand B always comes
// from the indexed X address and is copied into R1. Results land in the
// accumulator and, with modifier bit 0, back at the indexed Y address.

func (m *Machine) fetchAB(op int, xi, yi Addr) (a, b Word) {
	if op&2 != 0 {
		a = m.CPU.R2
	} else {
		a = m.Memory.Read(yi)
	}
	b = m.Memory.Read(xi)
	m.CPU.R1 = b
	return a, b
}

func (m *Machine) put(op int, yi Addr, result Word) {
	m.CPU.ACC = result
	if op&1 != 0 {
		m.Memory.Write(yi, result)
	}
}

func (m *Machine) putInt(op int, yi Addr, v int64) *Stop {
	if !IntInRange(v) {
		return m.stop(ReasonOverflow)
	}
	m.put(op, yi, FromInt(v))
	return nil
}

func (m *Machine) putFrac(op int, yi Addr, d float64) *Stop {
	if !FracInRange(d) {
		return m.stop(ReasonOverflow)
	}
	m.put(op, yi, FromFrac(d))
	return nil
}

func (m *Machine) putFloat(op int, yi Addr, f float64) *Stop {
	if !FloatInRange(f) {
		return m.stop(ReasonOverflow)
	}
	m.put(op, yi, FromFloat(f, false))
	return nil
}

func (m *Machine) arithmetic(op int, xi, yi Addr) *Stop {
	a, b := m.fetchAB(op, xi, yi)
	switch op &^ modMask {
	case opXor:
		m.put(op, yi, a^b)
	case opAddInt:
		return m.putInt(op, yi, a.Int()+b.Int())
	case opAddFloat:
		return m.putFloat(op, yi, a.Float()+b.Float())
	case opSubInt:
		return m.putInt(op, yi, a.Int()-b.Int())
	case opSubFloat:
		return m.putFloat(op, yi, a.Float()-b.Float())
	case opMulFrac:
		return m.putFrac(op, yi, a.Frac()*b.Frac())
	case opMulFloat:
		return m.putFloat(op, yi, a.Float()*b.Float())
	case opDivFrac:
		if b.Abs() == 0 {
			return m.stop(ReasonOverflow)
		}
		return m.putFrac(op, yi, a.Frac()/b.Frac())
	case opDivFloat:
		if b.Float() == 0 || b.Exp() < -63 {
			return m.stop(ReasonOverflow)
		}
		return m.putFloat(op, yi, a.Float()/b.Float())
	case opSubAbsInt:
		return m.putInt(op, yi, int64(a.Abs())-int64(b.Abs()))
	case opSubAbsFloat:
		return m.putFloat(op, yi, math.Abs(a.Float())-math.Abs(b.Float()))
	case opShiftLog:
		// The whole word shifts, sign bit included; zeros fill in.
		n := b.Exp()
		switch {
		case n <= -37 || n >= 37:
			m.put(op, yi, 0)
		case n >= 0:
			m.put(op, yi, (a<<uint(n))&WordMask)
		default:
			m.put(op, yi, a>>uint(-n))
		}
	case opShiftArith:
		// Only the magnitude shifts; the sign of A is preserved.
		n := b.Exp()
		mag := a.Abs()
		var res Word
		switch {
		case n <= -36 || n >= 36:
			res = 0
		case n >= 0:
			res = (mag << uint(n)) & ValMask
		default:
			res = mag >> uint(-n)
		}
		m.put(op, yi, a&SignMask|res)
	case opAnd:
		m.put(op, yi, a&b)
	case opOr:
		m.put(op, yi, a|b)
	}
	return nil
}

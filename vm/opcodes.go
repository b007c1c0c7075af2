package vm

// Opcodes. Codes 004..077 form the arithmetic group: within each group of
// four, bit 0 requests a write-back of the accumulator to the Y address and
// bit 1 takes the A operand from R2 instead of memory.
const (
	opNop = 0o000

	opXor         = 0o004
	opAddInt      = 0o010
	opAddFloat    = 0o014
	opSubInt      = 0o020
	opSubFloat    = 0o024
	opMulFrac     = 0o030
	opMulFloat    = 0o034
	opDivFrac     = 0o040
	opDivFloat    = 0o044
	opSubAbsInt   = 0o050
	opSubAbsFloat = 0o054
	opShiftLog    = 0o060
	opShiftArith  = 0o064
	opAnd         = 0o070
	opOr          = 0o074

	opHalt     = 0o100
	opMove     = 0o110
	opMoveNeg  = 0o111
	opMoveAbs  = 0o112
	opCopySign = 0o114
	opCopyExp  = 0o116
	opLoop     = 0o120
	opJump     = 0o130
	opJumpSub  = 0o131
	opJumpPos  = 0o132
	opJumpOver = 0o133
	opJumpZero = 0o134
	opJumpKey  = 0o135
	opPrint    = 0o162

	opMulLow    = 0o170
	opModulo    = 0o171
	opAddExp    = 0o172
	opSubExp    = 0o173
	opAddOnes   = 0o174
	opNormalize = 0o175
	opPopCount  = 0o176
)

// modMask strips the two modifier bits off an arithmetic-group opcode.
const modMask = 3

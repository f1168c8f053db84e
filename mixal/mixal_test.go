package mixal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_String_RendersThreeFields(t *testing.T) {
	instr := Instruction{Label: "ELSE", Mnemonic: NOP, Operand: ""}
	assert.Equal(t, "ELSE NOP \n", instr.String())

	instr = Instruction{Mnemonic: STA, Operand: "5(0:5)"}
	assert.Equal(t, " STA 5(0:5)\n", instr.String())
}

func TestEnterMnemonic_ChoosesNegativeForm(t *testing.T) {
	assert.Equal(t, ENTA, EnterMnemonic(RA, 5))
	assert.Equal(t, ENNA, EnterMnemonic(RA, -5))
	assert.Equal(t, ENTX, EnterMnemonic(RX, 0))
	assert.Equal(t, ENN1, EnterMnemonic(RI1, -1))
}

func TestLoadStoreMnemonic_PerRegister(t *testing.T) {
	assert.Equal(t, LDA, LoadMnemonic(RA))
	assert.Equal(t, LDX, LoadMnemonic(RX))
	assert.Equal(t, LD1, LoadMnemonic(RI1))
	assert.Equal(t, STA, StoreMnemonic(RA))
	assert.Equal(t, STX, StoreMnemonic(RX))
	assert.Equal(t, ST1, StoreMnemonic(RI1))
}

func TestWriterEmitter_EmitsLinesInOrderAndFlushesOnClose(t *testing.T) {
	var buf bytes.Buffer
	e := NewWriterEmitter(&buf)
	e.Emit(Instruction{Mnemonic: ORIG, Operand: "2000"})
	e.Emit(Instruction{Label: "L", Mnemonic: NOP})
	assert.NoError(t, e.Close())

	assert.Equal(t, " ORIG 2000\nL NOP \n", buf.String())
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestPrintDisassembly(t *testing.T) {
	rom, err := memory.NewROM("TEST", []byte{0x00, 0xE0, 0xA2, 0x2A, 0x12})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printDisassembly(&out, rom))

	assert.Equal(t,
		"0x200: 00E0  CLS\n"+
			"0x202: A22A  LD I, 0x22A\n"+
			"0x204: 12    DB 0x12\n",
		out.String())
}

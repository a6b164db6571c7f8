// Copyright 2026 The Flatkit Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lexparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasics(t *testing.T) {
	src := `table Monster { hp: int32 = 100; name: string; }`
	toks, err := Tokenize("monster.fbs", src)
	require.NoError(t, err)

	var kinds []TokenKind
	var texts []string
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, TokEOF, toks[len(toks)-1].Kind)
	assert.Contains(t, texts, "Monster")
	assert.Contains(t, texts, "int32")
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := Tokenize("f.fbs", `"line one\nline two"`)
	require.NoError(t, err)
	require.Equal(t, TokString, toks[0].Kind)
	assert.Equal(t, "line one\nline two", toks[0].Decoded)
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := Tokenize("f.fbs", `1 -2 3.5 -1.5e10 0x1F`)
	require.NoError(t, err)

	var got []Token
	for _, tok := range toks {
		if tok.Kind != TokEOF {
			got = append(got, tok)
		}
	}
	require.Len(t, got, 5)
	assert.Equal(t, TokInt, got[0].Kind)
	assert.Equal(t, TokInt, got[1].Kind)
	assert.Equal(t, "-2", got[1].Text)
	assert.Equal(t, TokFloat, got[2].Kind)
	assert.Equal(t, TokFloat, got[3].Kind)
	assert.Equal(t, TokInt, got[4].Kind)
	assert.Equal(t, "0x1F", got[4].Text)
}

func TestTokenizeLineComment(t *testing.T) {
	toks, err := Tokenize("f.fbs", "enum E : byte { // a comment\nA }")
	require.NoError(t, err)

	var texts []string
	for _, tok := range toks {
		if tok.Kind != TokEOF {
			texts = append(texts, tok.Text)
		}
	}
	assert.NotContains(t, texts, "comment")
	assert.Contains(t, texts, "A")
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	_, err := Tokenize("f.fbs", `"never closed`)
	require.Error(t, err)
	var le *lexError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "f.fbs", le.file)
}

func TestTokenizeUnexpectedCharacterFails(t *testing.T) {
	_, err := Tokenize("f.fbs", `table T { f: @int32; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

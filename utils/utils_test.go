package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type greeter struct{}

func (greeter) Greet() string { return "hi" }

func TestFuncName(t *testing.T) {
	assert.Equal(t, "ToUpper", FuncName(strings.ToUpper))
	assert.Equal(t, "TestFuncName", FuncName(TestFuncName))

	var g greeter
	assert.Equal(t, "Greet", FuncName(g.Greet))
}

func TestFuncNameNotAFunction(t *testing.T) {
	assert.Empty(t, FuncName("ToUpper"))
	assert.Empty(t, FuncName(nil))
}

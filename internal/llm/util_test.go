package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_Fences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"json fence",
			"```json\n{\"tables\": []}\n```",
			`{"tables": []}`,
		},
		{
			"bare fence",
			"```\n{\"tables\": []}\n```",
			`{"tables": []}`,
		},
		{
			"fence with language line",
			"```javascript\n{\"tables\": []}\n```",
			`{"tables": []}`,
		},
		{
			"no fence",
			`{"tables": []}`,
			`{"tables": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_SurroundingProse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"preamble before object",
			"Here is the schema plan:\n{\"tables\": [{\"name\": \"users\"}]}",
			`{"tables": [{"name": "users"}]}`,
		},
		{
			"multi-sentence preamble",
			"I reviewed the analysis. The dataset has two tables. Plan: {\"tables\": []}",
			`{"tables": []}`,
		},
		{
			"trailing commentary",
			"{\"is_sufficient\": true}\n\nLet me know if the schema needs changes.",
			`{"is_sufficient": true}`,
		},
		{
			"array response",
			"Detected issues:\n[\"users has no primary key\"]",
			`["users has no primary key"]`,
		},
		{
			"nested objects",
			"Result: {\"verification\": {\"issues\": {\"severity\": \"critical\"}}}",
			`{"verification": {"issues": {"severity": "critical"}}}`,
		},
		{
			"braces inside strings",
			"Output: {\"description\": \"column type is {unknown}\"}",
			`{"description": "column type is {unknown}"}`,
		},
		{
			"escaped quotes",
			"{\"reason\": \"column \\\"id\\\" is unique\"} done",
			`{"reason": "column \"id\" is unique"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_NoJSONLeftAsIs(t *testing.T) {
	assert.Equal(t, "no structured output here", CleanJSONBlock("no structured output here"))
	// An unbalanced value cannot be extracted, so the text passes through.
	assert.Equal(t, `{"tables": [`, CleanJSONBlock(`{"tables": [`))
}

func TestCleanCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"bare fence around grammar",
			"```\nentity users\n  id: integer [pk]\n```",
			"entity users\n  id: integer [pk]",
		},
		{
			"fence with language line",
			"```text\nentity users\n  id: integer [pk]\n```",
			"entity users\n  id: integer [pk]",
		},
		{
			"no fence",
			"entity users\n  id: integer [pk]",
			"entity users\n  id: integer [pk]",
		},
		{
			"first line with spaces is content",
			"```entity users\n  id: integer [pk]\n```",
			"entity users\n  id: integer [pk]",
		},
		{
			"surrounding whitespace",
			"  \n```\nentity orders\n  id: integer [pk]\n```\n ",
			"entity orders\n  id: integer [pk]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanCodeFences(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"name": "users"}`, extractJSONObject(`{"name": "users"} trailing`))
	assert.Equal(t, `{"a": {"b": [1, 2]}}`, extractJSONObject(`{"a": {"b": [1, 2]}}`))
	assert.Equal(t, "", extractJSONObject("not an object"))
	assert.Equal(t, "", extractJSONObject(""))
	assert.Equal(t, "", extractJSONObject(`{"unterminated": `))
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[{"id": 1}, {"id": 2}]`, extractJSONArray(`[{"id": 1}, {"id": 2}] extra`))
	assert.Equal(t, `[[1], [2]]`, extractJSONArray(`[[1], [2]]`))
	assert.Equal(t, "", extractJSONArray("not an array"))
	assert.Equal(t, "", extractJSONArray("["))
}

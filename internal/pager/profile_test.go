package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvCandidateShellWords(t *testing.T) {
	env := MapEnviron{"PAGER": `less -R --quit-if-one-screen`}

	p, err := Resolve([]string{"HL_PAGER", "PAGER"}, env, nil, false, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"less", "-R", "--quit-if-one-screen"}, p.Command)
}

func TestResolveSkipsUnsetCandidates(t *testing.T) {
	env := MapEnviron{"PAGER": "less"}

	p, err := Resolve([]string{"HL_PAGER", "PAGER"}, env, nil, false, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"less"}, p.Command)
}

func TestResolveUnresolvedFallsThrough(t *testing.T) {
	_, err := Resolve([]string{"HL_PAGER", "PAGER"}, MapEnviron{}, nil, false, "")
	require.Error(t, err)
	assert.IsType(t, &UnresolvedError{}, err)
}

func TestResolveProfileCandidate(t *testing.T) {
	profiles := ProfileSet{"less": Profile{Command: []string{"less", "-RF"}, Follow: true}}

	p, err := Resolve([]string{"@less"}, MapEnviron{}, profiles, false, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"less", "-RF"}, p.Command)
}

func TestResolveProfileSkippedInFollowWithoutSupport(t *testing.T) {
	profiles := ProfileSet{"less": Profile{Command: []string{"less"}, Follow: false}}

	_, err := Resolve([]string{"@less"}, MapEnviron{}, profiles, true, "")
	require.Error(t, err)
}

func TestResolveEnvCandidateFatalOnUnbalancedQuote(t *testing.T) {
	env := MapEnviron{"PAGER": `less "unterminated`}

	_, err := Resolve([]string{"PAGER"}, env, nil, false, "")
	require.Error(t, err)

	var candErr *CandidateError
	assert.ErrorAs(t, err, &candErr)
}

func TestResolveDelimiterSplitOverridesShellWords(t *testing.T) {
	env := MapEnviron{"PAGER": `less:-R "no quoting here"`}

	p, err := Resolve([]string{"PAGER"}, env, nil, false, ":")
	require.NoError(t, err)
	assert.Equal(t, []string{"less", `-R "no quoting here"`}, p.Command)
}

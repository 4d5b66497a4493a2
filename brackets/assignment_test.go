package brackets

import (
	"encoding/json"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence возвращает заранее заданные индексы.
type sequence struct {
	values []int
	pos    int
}

func (s *sequence) Intn(n int) int {
	v := s.values[s.pos%len(s.values)] % n
	s.pos++
	return v
}

func TestShuffleTeamsIsPermutation(t *testing.T) {
	ids := teamIDs(10)
	shuffled := ShuffleTeams(ids, rand.New(rand.NewSource(42)))

	assert.Equal(t, teamIDs(10), ids, "input must not be modified")
	sorted := append([]string(nil), shuffled...)
	sort.Strings(sorted)
	assert.Equal(t, ids, sorted)

	again := ShuffleTeams(ids, rand.New(rand.NewSource(42)))
	assert.Equal(t, shuffled, again)
}

func TestShuffleTeamsFisherYates(t *testing.T) {
	// j = 0 на каждом шаге: i меняется с первым элементом.
	shuffled := ShuffleTeams([]string{"A", "B", "C", "D"}, &sequence{values: []int{0}})
	assert.Equal(t, []string{"B", "C", "D", "A"}, shuffled)
}

func TestShuffleTeamsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := make(map[string]int)
	const rounds = 6000
	for i := 0; i < rounds; i++ {
		counts[ShuffleTeams([]string{"A", "B", "C"}, rng)[0]]++
	}
	for _, id := range []string{"A", "B", "C"} {
		assert.InDelta(t, rounds/3, counts[id], rounds*0.05, "team %s first", id)
	}
}

func TestDistributeTeams(t *testing.T) {
	assignment, leftover := DistributeTeams(teamIDs(10), []string{"z1", "z2", "z3"})
	assert.Equal(t, []string{"T01", "T02", "T03", "T04"}, assignment["z1"])
	assert.Equal(t, []string{"T05", "T06", "T07", "T08"}, assignment["z2"])
	assert.Equal(t, []string{"T09", "T10"}, assignment["z3"])
	assert.Empty(t, leftover)

	assignment, leftover = DistributeTeams(teamIDs(9), []string{"z1", "z2"})
	assert.Len(t, assignment["z2"], 4)
	assert.Equal(t, []string{"T09"}, leftover)
}

func TestDistributeTeamsEmptyRostersAreNotNil(t *testing.T) {
	assignment, leftover := DistributeTeams(teamIDs(2), []string{"z1", "z2", "z3"})
	require.NotNil(t, leftover)
	require.NotNil(t, assignment["z2"])
	require.NotNil(t, assignment["z3"])

	data, err := json.Marshal(map[string]interface{}{"zone": assignment["z3"], "unassigned": leftover})
	require.NoError(t, err)
	assert.JSONEq(t, `{"zone": [], "unassigned": []}`, string(data))
}

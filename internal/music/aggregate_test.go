package music

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(title string, artists ...string) SongPlay {
	return SongPlay{WorkoutID: "w1", Title: title, ArtistNames: artists}
}

func TestAggregate(t *testing.T) {
	plays := []SongPlay{
		play("Song A", "Artist 1"),
		play("Song A", "Artist 1"),
		play("Song A", "Artist 1"),
		play("Song B", "Artist 2"),
		play("Song B", "Artist 2"),
		play("Song C", "Artist 1"),
	}

	stats := Aggregate(plays)
	assert.Equal(t, 6, stats.TotalPlays)
	assert.Equal(t, 3, stats.UniqueSongs)
	assert.Equal(t, 2, stats.UniqueArtists)

	require.Len(t, stats.TopSongs, 3)
	assert.Equal(t, Song{Title: "Song A", Artist: "Artist 1", Plays: 3}, stats.TopSongs[0])
	assert.Equal(t, Song{Title: "Song B", Artist: "Artist 2", Plays: 2}, stats.TopSongs[1])

	require.Len(t, stats.TopArtists, 2)
	assert.Equal(t, Artist{Name: "Artist 1", Plays: 4, Songs: 2}, stats.TopArtists[0])
	assert.Equal(t, Artist{Name: "Artist 2", Plays: 2, Songs: 1}, stats.TopArtists[1])
}

func TestAggregate_CollaborationsCountPerArtist(t *testing.T) {
	plays := []SongPlay{
		play("Duet", "Artist 1", "Artist 2"),
		play("Duet", "Artist 1", "Artist 2"),
	}

	stats := Aggregate(plays)
	// the combined name identifies the song, each artist gets the plays
	require.Len(t, stats.TopSongs, 1)
	assert.Equal(t, "Artist 1, Artist 2", stats.TopSongs[0].Artist)
	assert.Equal(t, 2, stats.TopSongs[0].Plays)

	require.Len(t, stats.TopArtists, 2)
	assert.Equal(t, 2, stats.TopArtists[0].Plays)
	assert.Equal(t, 2, stats.TopArtists[1].Plays)
}

func TestAggregate_TiesKeepFirstEncounterOrder(t *testing.T) {
	plays := []SongPlay{
		play("First", "Artist 1"),
		play("Second", "Artist 2"),
		play("Third", "Artist 3"),
	}

	stats := Aggregate(plays)
	require.Len(t, stats.TopSongs, 3)
	assert.Equal(t, "First", stats.TopSongs[0].Title)
	assert.Equal(t, "Second", stats.TopSongs[1].Title)
	assert.Equal(t, "Third", stats.TopSongs[2].Title)
}

func TestAggregate_Limits(t *testing.T) {
	var plays []SongPlay
	for i := 0; i < 10; i++ {
		plays = append(plays, play(
			fmt.Sprintf("Song %d", i),
			fmt.Sprintf("Artist %d", i),
		))
	}

	stats := Aggregate(plays)
	assert.Len(t, stats.TopSongs, topSongsLimit)
	assert.Len(t, stats.TopArtists, topArtistsLimit)
	assert.Equal(t, 10, stats.UniqueSongs)
	assert.Equal(t, 10, stats.UniqueArtists)
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	assert.Zero(t, stats.TotalPlays)
	assert.Empty(t, stats.TopSongs)
	assert.Empty(t, stats.TopArtists)
}

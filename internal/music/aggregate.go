package music

import (
	"sort"
	"strings"
)

const (
	topSongsLimit   = 5
	topArtistsLimit = 3
)

// SongPlay is one song-play row from the external catalogue.
type SongPlay struct {
	WorkoutID   string   `json:"workout_id"`
	Title       string   `json:"title"`
	ArtistNames []string `json:"artist_names"`
}

type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Plays  int    `json:"plays"`
}

type Artist struct {
	Name  string `json:"name"`
	Plays int    `json:"plays"`
	Songs int    `json:"songs"` // distinct songs by this artist
}

type Stats struct {
	TopSongs      []Song   `json:"topSongs,omitempty"`
	TopArtists    []Artist `json:"topArtists,omitempty"`
	UniqueSongs   int      `json:"uniqueSongs"`
	UniqueArtists int      `json:"uniqueArtists"`
	TotalPlays    int      `json:"totalPlays"`
}

// Aggregate ranks song plays into top-songs and top-artists lists.
// Rankings are descending by play count, ties broken by first-encounter
// order in the input.
func Aggregate(plays []SongPlay) Stats {
	type songKey struct {
		title  string
		artist string
	}

	songPlays := make(map[songKey]int)
	var songOrder []songKey

	artistPlays := make(map[string]int)
	artistSongs := make(map[string]map[string]bool)
	var artistOrder []string

	for _, play := range plays {
		artist := strings.Join(play.ArtistNames, ", ")
		k := songKey{title: play.Title, artist: artist}
		if songPlays[k] == 0 {
			songOrder = append(songOrder, k)
		}
		songPlays[k]++

		for _, name := range play.ArtistNames {
			if artistPlays[name] == 0 {
				artistOrder = append(artistOrder, name)
				artistSongs[name] = make(map[string]bool)
			}
			artistPlays[name]++
			artistSongs[name][play.Title] = true
		}
	}

	stats := Stats{
		UniqueSongs:   len(songOrder),
		UniqueArtists: len(artistOrder),
		TotalPlays:    len(plays),
	}

	songs := make([]Song, 0, len(songOrder))
	for _, k := range songOrder {
		songs = append(songs, Song{Title: k.title, Artist: k.artist, Plays: songPlays[k]})
	}
	sort.SliceStable(songs, func(i, j int) bool { return songs[i].Plays > songs[j].Plays })
	if len(songs) > topSongsLimit {
		songs = songs[:topSongsLimit]
	}
	stats.TopSongs = songs

	artists := make([]Artist, 0, len(artistOrder))
	for _, name := range artistOrder {
		artists = append(artists, Artist{
			Name:  name,
			Plays: artistPlays[name],
			Songs: len(artistSongs[name]),
		})
	}
	sort.SliceStable(artists, func(i, j int) bool { return artists[i].Plays > artists[j].Plays })
	if len(artists) > topArtistsLimit {
		artists = artists[:topArtistsLimit]
	}
	stats.TopArtists = artists

	return stats
}

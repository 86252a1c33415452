package model

// TMDb genre id -> display name. Tags outside this table render as "Unknown".
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

const UnknownGenre = "Unknown"

func GenreName(tag int) string {
	if name, ok := genreNames[tag]; ok {
		return name
	}
	return UnknownGenre
}

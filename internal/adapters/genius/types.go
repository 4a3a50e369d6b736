package genius

type searchDTO struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result songDTO `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

type songDTO struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

// Song es un hit de búsqueda.
type Song struct {
	ID     int
	Title  string
	Artist string
	URL    string
}

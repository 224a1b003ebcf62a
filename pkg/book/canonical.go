package book

// CanonicalRecord is one row of dim_book: the single merged
// representation of a book after survivorship. BookID is unique across
// the set and equals the cluster key's string form.
//
// Column names (json/parquet tags) follow the standard-zone schema.
type CanonicalRecord struct {
	BookID       string   `json:"book_id"                 parquet:"book_id"`
	Title        *string  `json:"titulo"                  parquet:"titulo,optional"`
	TitleNorm    *string  `json:"titulo_normalizado"      parquet:"titulo_normalizado,optional"`
	Subtitle     *string  `json:"subtitulo"               parquet:"subtitulo,optional"`
	MainAuthor   *string  `json:"autor_principal"         parquet:"autor_principal,optional"`
	AuthorNorm   *string  `json:"autor_normalizado"       parquet:"autor_normalizado,optional"`
	Authors      []string `json:"autores"                 parquet:"autores,list"`
	Publisher    *string  `json:"editorial"               parquet:"editorial,optional"`
	PubYear      *int     `json:"anio_publicacion"        parquet:"anio_publicacion,optional"`
	PubDate      *string  `json:"fecha_publicacion"       parquet:"fecha_publicacion,optional"`
	Language     *string  `json:"idioma"                  parquet:"idioma,optional"`
	ISBN10       *string  `json:"isbn10"                  parquet:"isbn10,optional"`
	ISBN13       *string  `json:"isbn13"                  parquet:"isbn13,optional"`
	Pages        *int     `json:"paginas"                 parquet:"paginas,optional"`
	Categories   []string `json:"categorias"              parquet:"categorias,list"`
	Price        *float64 `json:"precio"                  parquet:"precio,optional"`
	Currency     *string  `json:"moneda"                  parquet:"moneda,optional"`
	Rating       *float64 `json:"rating"                  parquet:"rating,optional"`
	RatingsCount *int     `json:"ratings_count"           parquet:"ratings_count,optional"`

	// WinningSource is the source that contributed the most populated
	// fields among cluster members before the merge.
	WinningSource string `json:"fuente_ganadora" parquet:"fuente_ganadora"`

	// UpdatedAt is the pipeline run timestamp in RFC 3339 form; one
	// value is shared by all records of a run.
	UpdatedAt string `json:"ts_ultima_actualizacion" parquet:"ts_ultima_actualizacion"`
}

// TraceabilityRow links one canonical field value back to the source
// record that supplied it. One row is emitted per (field, contributing
// source) pair used in the merged result; the set allows exact
// provenance reconstruction and is never used for further computation.
type TraceabilityRow struct {
	BookID    string `json:"book_id"     parquet:"book_id"`
	Source    string `json:"source_name" parquet:"source_name"`
	RowNumber int    `json:"row_number"  parquet:"row_number"`
	Field     string `json:"field"       parquet:"field"`
	Value     string `json:"value"       parquet:"value"`
}

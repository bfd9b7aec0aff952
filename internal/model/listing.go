package model

// Listing is one real-estate unit as returned by the upstream catalog.
// The catalog has no fixed schema, so records stay as decoded JSON objects
// and fields are read through probes.
type Listing map[string]any

// Probe returns the value of the first key present in l with a non-null
// value. An empty string still counts as present.
func (l Listing) Probe(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := l[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Alternate field names, in probing order.
var (
	BedroomFields      = []string{"quartos", "bedrooms", "dormitorios", "rooms", "numero_quartos"}
	PriceFields        = []string{"valor", "preco", "price", "value", "preco_venda", "preco_aluguel"}
	TitleFields        = []string{"titulo", "title", "nome"}
	DescriptionFields  = []string{"descricao", "description", "resumo"}
	NeighborhoodFields = []string{"bairro", "neighborhood", "bairro_nome"}
	CityFields         = []string{"cidade", "city", "cidade_nome"}
	TypeFields         = []string{"tipo", "type", "finalidade"}
	AddressFields      = []string{"endereco", "address"}
)

// TextFields lists the descriptive fields concatenated into the searchable text.
var TextFields = [][]string{
	TitleFields,
	DescriptionFields,
	NeighborhoodFields,
	CityFields,
	TypeFields,
	AddressFields,
}

// PageKeys are the wrapper keys under which a catalog page may carry its records.
var PageKeys = []string{"data", "imoveis", "items", "results", "listings"}

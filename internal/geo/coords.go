package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// DisplayOffset is added to a city's coordinate before plotting so the
// marker does not sit exactly on the city center at high zoom.
const DisplayOffset = 0.03

// Offset returns the coordinate shifted by the display offset.
func (c Coordinate) Offset() Coordinate {
	return Coordinate{Lat: c.Lat + DisplayOffset, Lon: c.Lon + DisplayOffset}
}

// foldCity normalizes a city name for table lookup: NFD decomposition,
// combining marks stripped, upper-cased, whitespace collapsed. "São Paulo"
// and "SAO PAULO" fold to the same key.
func foldCity(name string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, name)
	if err != nil {
		folded = name
	}
	return strings.ToUpper(strings.Join(strings.Fields(folded), " "))
}

// Lookup returns the plotting coordinate for a destination city. The
// lookup is accent- and case-insensitive; ok is false for cities missing
// from the table.
func Lookup(city string) (Coordinate, bool) {
	c, ok := cityCoords[foldCity(city)]
	if !ok {
		return Coordinate{}, false
	}
	return c, true
}

// cityCoords is the hardcoded destination-city table used by the scatter
// maps. Keys are folded (see foldCity).
var cityCoords = map[string]Coordinate{
	"ARACAJU":                  {-10.9472, -37.0731},
	"ARAPIRACA":                {-9.7528, -36.6612},
	"ARCOVERDE":                {-8.4196, -37.0561},
	"BARREIRAS":                {-12.1447, -44.9927},
	"BELEM":                    {-1.45583, -48.50444},
	"BELO HORIZONTE":           {-19.916681, -43.934493},
	"BLUMENAU":                 {-26.9199, -49.0661},
	"BRASILIA":                 {-15.77972, -47.92972},
	"CAMBE":                    {-23.2594, -51.0135},
	"CAMPINA GRANDE":           {-7.2306, -35.8819},
	"CAMPINAS":                 {-22.90556, -47.06083},
	"CAMPO GRANDE":             {-20.44278, -54.64639},
	"CAMPO MOURAO":             {-24.0462, -52.3786},
	"CARUARU":                  {-8.2821, -35.9765},
	"CASCAVEL":                 {-24.9556, -53.4551},
	"CAXIAS DO SUL":            {-29.1678, -51.1794},
	"CHAPECO":                  {-27.1006, -52.6153},
	"CONCORDIA":                {-27.2333, -52.0322},
	"CURITIBA":                 {-25.4284, -49.2733},
	"ERECHIM":                  {-27.6378, -52.2661},
	"FEIRA DE SANTANA":         {-12.2669, -38.9667},
	"FLORIANO":                 {-6.7669, -43.0303},
	"FORTALEZA":                {-3.7172, -38.5434},
	"FOZ DO IGUACU":            {-25.5469, -54.5882},
	"GARIBALDI":                {-29.3109, -51.5228},
	"GOIANIA":                  {-16.67861, -49.25389},
	"GUANAMBI":                 {-14.2083, -42.7819},
	"GUARAPUAVA":               {-25.3909, -51.4622},
	"GUARULHOS":                {-23.46278, -46.53333},
	"ICARA":                    {-28.9536, -49.8849},
	"IJUI":                     {-28.3845, -53.9178},
	"IMPERATRIZ":               {-5.5272, -47.4922},
	"INDAIAL":                  {-26.9043, -49.2328},
	"ITABUNA":                  {-14.7877, -39.2781},
	"ITAJAI":                   {-26.9106, -48.6667},
	"JABOATAO DOS GUARARAPES":  {-8.1122, -35.0078},
	"JAGUARIAIVA":              {-24.1267, -49.7481},
	"JAGUARIBE":                {-5.9878, -39.2964},
	"JOAO PESSOA":              {-7.1153, -34.861},
	"JOINVILLE":                {-26.3044, -48.8456},
	"JUAZEIRO":                 {-9.4161, -40.5033},
	"JUAZEIRO DO NORTE":        {-7.2136, -39.3153},
	"LAGES":                    {-27.8174, -50.3251},
	"LAJEADO":                  {-29.4606, -51.9664},
	"LIMEIRA":                  {-22.5669, -47.4016},
	"LONDRINA":                 {-23.3103, -51.1628},
	"MACEIO":                   {-9.6658, -35.735},
	"MAFRA":                    {-26.1847, -50.6847},
	"MANAUS":                   {-3.10194, -60.025},
	"MARECHAL CANDIDO RONDON":  {-24.5514, -54.0544},
	"MARINGA":                  {-23.4256, -51.9331},
	"MOSSORO":                  {-5.1877, -37.3443},
	"NATAL":                    {-5.7945, -35.211},
	"NOSSA SENHORA DO SOCORRO": {-10.8891, -37.1033},
	"NOVA SANTA RITA":          {-29.8, -51.1},
	"NOVO HAMBURGO":            {-29.6879, -51.1309},
	"PALMARES":                 {-8.5625, -35.5436},
	"PARANAVAI":                {-23.1003, -52.4683},
	"PARNAMIRIM":               {-5.9111, -35.2442},
	"PASSO FUNDO":              {-28.2606, -52.4064},
	"PATOS":                    {-7.0256, -37.2761},
	"PELOTAS":                  {-31.7658, -52.3373},
	"PETROLINA":                {-9.3892, -40.5023},
	"PICOS":                    {-7.0797, -41.4675},
	"PIRACICABA":               {-22.7239, -47.6499},
	"PONTA GROSSA":             {-25.0918, -50.1587},
	"PORTO ALEGRE":             {-30.0346, -51.2177},
	"RECIFE":                   {-8.0476, -34.877},
	"RIO BRANCO":               {-9.9748, -67.8243},
	"RIO DE JANEIRO":           {-22.9068, -43.1729},
	"SALVADOR":                 {-12.9714, -38.5014},
	"SANTAREM":                 {-2.4384, -54.6997},
	"SANTO ANDRE":              {-23.6638, -46.5387},
	"SANTO ANGELO":             {-28.3003, -54.2664},
	"SAO BERNARDO DO CAMPO":    {-23.6913, -46.5646},
	"SAO JOSE DO RIO PRETO":    {-20.8194, -49.3796},
	"SAO JOSE DOS CAMPOS":      {-23.1896, -45.8845},
	"SAO LEOPOLDO":             {-29.7613, -51.1487},
	"SAO LUIS":                 {-2.5307, -44.3068},
	"SAO PAULO":                {-23.5505, -46.6333},
	"SAPIRANGA":                {-29.5925, -51.1277},
	"SOROCABA":                 {-23.5015, -47.4526},
	"TANGARA DA SERRA":         {-14.6383, -57.5092},
	"TEIXEIRA DE FREITAS":      {-17.5208, -39.7408},
	"TERESINA":                 {-5.08917, -42.80194},
	"UBERABA":                  {-19.7473, -47.9314},
	"UBERLANDIA":               {-18.9186, -48.2777},
	"VARGINHA":                 {-21.5555, -45.4367},
	"VIAMAO":                   {-30.076, -51.0704},
	"VITORIA":                  {-20.3155, -40.3128},
	"VITORIA DA CONQUISTA":     {-14.861, -40.8397},
}

package feasibility

// PolicyTerm contributes to the feasibility verdict when its term appears in
// the request. Positive weight counts toward feasibility, negative weight
// marks the request as out of the platform's domain. Keeping the tables as
// explicit data makes the decision independently testable and lets a
// stronger classifier replace this one without touching orchestration.
type PolicyTerm struct {
	Term   string
	Weight int
}

// positiveTerms name request shapes the geospatial platform can serve.
var positiveTerms = []PolicyTerm{
	{Term: "elevation", Weight: 1},
	{Term: "terrain", Weight: 1},
	{Term: "dem", Weight: 1},
	{Term: "satellite", Weight: 1},
	{Term: "imagery", Weight: 1},
	{Term: "landsat", Weight: 1},
	{Term: "sentinel", Weight: 1},
	{Term: "modis", Weight: 1},
	{Term: "ndvi", Weight: 1},
	{Term: "vegetation", Weight: 1},
	{Term: "deforestation", Weight: 1},
	{Term: "land cover", Weight: 1},
	{Term: "land use", Weight: 1},
	{Term: "raster", Weight: 1},
	{Term: "vector", Weight: 1},
	{Term: "geospatial", Weight: 1},
	{Term: "remote sensing", Weight: 1},
	{Term: "precipitation", Weight: 1},
	{Term: "rainfall", Weight: 1},
	{Term: "temperature", Weight: 1},
	{Term: "climate", Weight: 1},
	{Term: "drought", Weight: 1},
	{Term: "flood", Weight: 1},
	{Term: "wildfire", Weight: 1},
	{Term: "burned area", Weight: 1},
	{Term: "snow cover", Weight: 1},
	{Term: "surface water", Weight: 1},
	{Term: "glacier", Weight: 1},
	{Term: "urban growth", Weight: 1},
	{Term: "population density", Weight: 1},
	{Term: "boundary", Weight: 1},
	{Term: "watershed", Weight: 1},
	{Term: "time series", Weight: 1},
	{Term: "map", Weight: 1},
	{Term: "dataset", Weight: 1},
}

// negativeTerms name requests with no geospatial-analysis answer.
var negativeTerms = []PolicyTerm{
	{Term: "pizza", Weight: -1},
	{Term: "restaurant", Weight: -1},
	{Term: "recipe", Weight: -1},
	{Term: "movie", Weight: -1},
	{Term: "song", Weight: -1},
	{Term: "lyrics", Weight: -1},
	{Term: "stock price", Weight: -1},
	{Term: "cryptocurrency", Weight: -1},
	{Term: "bitcoin", Weight: -1},
	{Term: "horoscope", Weight: -1},
	{Term: "dating", Weight: -1},
	{Term: "joke", Weight: -1},
	{Term: "poem", Weight: -1},
	{Term: "shopping", Weight: -1},
	{Term: "football score", Weight: -1},
	{Term: "basketball score", Weight: -1},
	{Term: "celebrity", Weight: -1},
}

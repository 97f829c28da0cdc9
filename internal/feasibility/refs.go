package feasibility

// Reference is one static documentation snippet the assessor can match a
// request against and suggest back to the user.
type Reference struct {
	Title    string
	Snippet  string
	Keywords []string
	URL      string
}

var references = []Reference{
	{
		Title:    "ee.Image — single raster images",
		Snippet:  "Load a single raster such as a digital elevation model and visualize or sample it.",
		Keywords: []string{"elevation", "dem", "terrain", "slope", "hillshade", "raster"},
		URL:      "https://developers.google.com/earth-engine/guides/image_overview",
	},
	{
		Title:    "ee.ImageCollection — raster time series",
		Snippet:  "Filter image collections by date and region, composite them, and reduce over time.",
		Keywords: []string{"time series", "collection", "composite", "landsat", "sentinel", "modis", "imagery"},
		URL:      "https://developers.google.com/earth-engine/guides/ic_creating",
	},
	{
		Title:    "ee.FeatureCollection — vector data",
		Snippet:  "Work with vector features such as administrative boundaries and sampled points.",
		Keywords: []string{"vector", "boundary", "polygon", "feature", "point", "region"},
		URL:      "https://developers.google.com/earth-engine/guides/feature_collections",
	},
	{
		Title:    "Reducers — zonal statistics",
		Snippet:  "Aggregate raster values over regions: means, sums, histograms, percentiles.",
		Keywords: []string{"statistics", "mean", "average", "sum", "zonal", "aggregate", "histogram"},
		URL:      "https://developers.google.com/earth-engine/guides/reducers_intro",
	},
	{
		Title:    "Spectral indices — NDVI and friends",
		Snippet:  "Compute band math such as NDVI, NDWI, and EVI for vegetation and water analysis.",
		Keywords: []string{"ndvi", "ndwi", "evi", "vegetation", "index", "band"},
		URL:      "https://developers.google.com/earth-engine/tutorials/tutorial_api_06",
	},
	{
		Title:    "Classification — land cover mapping",
		Snippet:  "Train classifiers to map land cover and detect change between dates.",
		Keywords: []string{"land cover", "classification", "change detection", "deforestation", "urban"},
		URL:      "https://developers.google.com/earth-engine/guides/classification",
	},
	{
		Title:    "Climate and weather datasets",
		Snippet:  "Analyze precipitation, temperature, and reanalysis datasets over any region.",
		Keywords: []string{"precipitation", "rainfall", "temperature", "climate", "drought", "era5"},
		URL:      "https://developers.google.com/earth-engine/datasets/tags/climate",
	},
	{
		Title:    "Exporting results",
		Snippet:  "Export images, tables, and videos to Drive or Cloud Storage as analysis output.",
		Keywords: []string{"export", "download", "geotiff", "csv", "drive"},
		URL:      "https://developers.google.com/earth-engine/guides/exporting",
	},
}

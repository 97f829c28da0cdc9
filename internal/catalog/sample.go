package catalog

import "time"

func date(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// sampleDescriptors is the built-in fallback used when the remote catalog
// cannot be fetched or decoded. It covers the common request shapes
// (elevation, imagery, climate, land cover, boundaries) so the pipeline
// degrades instead of halting.
func sampleDescriptors() []Descriptor {
	return []Descriptor{
		{
			ID:          "USGS/SRTMGL1_003",
			Title:       "SRTM Digital Elevation Data 30m",
			Description: "Shuttle Radar Topography Mission global elevation model at 1 arc-second resolution.",
			Type:        KindRaster,
			Provider:    "NASA / USGS",
			Start:       date(2000, 2, 11),
			End:         date(2000, 2, 22),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/USGS_SRTMGL1_003",
		},
		{
			ID:          "COPERNICUS/S2_SR_HARMONIZED",
			Title:       "Sentinel-2 Surface Reflectance, Harmonized",
			Description: "Multispectral surface reflectance imagery at 10-60m, revisit every 5 days.",
			Type:        KindRasterSeries,
			Provider:    "European Space Agency",
			Start:       date(2015, 6, 27),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/COPERNICUS_S2_SR_HARMONIZED",
		},
		{
			ID:          "LANDSAT/LC08/C02/T1_L2",
			Title:       "Landsat 8 Collection 2 Surface Reflectance",
			Description: "Atmospherically corrected Landsat 8 OLI/TIRS imagery, 30m, 16-day revisit.",
			Type:        KindRasterSeries,
			Provider:    "USGS",
			Start:       date(2013, 3, 18),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/LANDSAT_LC08_C02_T1_L2",
		},
		{
			ID:          "MODIS/061/MOD13Q1",
			Title:       "MODIS Terra Vegetation Indices 16-Day 250m",
			Description: "NDVI and EVI vegetation indices from MODIS Terra.",
			Type:        KindRasterSeries,
			Provider:    "NASA",
			Start:       date(2000, 2, 18),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/MODIS_061_MOD13Q1",
		},
		{
			ID:          "ECMWF/ERA5_LAND/HOURLY",
			Title:       "ERA5-Land Hourly Climate Reanalysis",
			Description: "Hourly temperature, precipitation, wind, and other climate variables at 9km.",
			Type:        KindRasterSeries,
			Provider:    "ECMWF / Copernicus",
			Start:       date(1950, 1, 1),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/ECMWF_ERA5_LAND_HOURLY",
		},
		{
			ID:          "ESA/WorldCover/v200",
			Title:       "ESA WorldCover 10m Land Cover 2021",
			Description: "Global land cover map for 2021 at 10m resolution, eleven classes.",
			Type:        KindRaster,
			Provider:    "European Space Agency",
			Start:       date(2021, 1, 1),
			End:         date(2021, 12, 31),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/ESA_WorldCover_v200",
		},
		{
			ID:          "JRC/GSW1_4/GlobalSurfaceWater",
			Title:       "JRC Global Surface Water Mapping Layers",
			Description: "Occurrence, change, and seasonality of surface water from 1984 to 2021.",
			Type:        KindRaster,
			Provider:    "EC Joint Research Centre",
			Start:       date(1984, 3, 16),
			End:         date(2021, 12, 31),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/JRC_GSW1_4_GlobalSurfaceWater",
		},
		{
			ID:          "TIGER/2018/States",
			Title:       "TIGER: US Census States 2018",
			Description: "United States state boundary polygons from the Census Bureau.",
			Type:        KindVector,
			Provider:    "US Census Bureau",
			Start:       date(2018, 1, 1),
			End:         date(2018, 12, 31),
			DocsURL:     "https://developers.google.com/earth-engine/datasets/catalog/TIGER_2018_States",
		},
	}
}

// Package domain models the EPA "Annual AQI by County" data set and the
// county-level risk classification derived from it.
//
// # Data Source
//
// Each yearly file is the EPA AirData annual summary
// (annual_aqi_by_county_YYYY.csv), one row per county that had a monitor
// reporting during that year. The loader injects the year from the file
// name, so a file's identity wins over any Year column it carries.
//
// # Columns
//
//	Required:  State, County, Median AQI, Max AQI
//	Optional:  Days with AQI, Good Days, Moderate Days,
//	           Unhealthy for Sensitive Groups Days, Unhealthy Days,
//	           Very Unhealthy Days, Hazardous Days, 90th Percentile AQI,
//	           Days CO, Days NO2, Days Ozone, Days PM2.5, Days PM10
//
// Empty or non-numeric cells are loaded as NaN and are never read as zero.
// A record missing Median AQI or Max AQI is skipped by the county
// aggregation rather than reported.
//
// # Exposure Dimensions
//
// Chronic exposure is measured by the county's mean Median AQI across the
// selected years; acute exposure by the mean Max AQI. A county that is high
// on both is in "Double Jeopardy".
//
// # Classification Variants
//
// Two policies coexist and are kept distinct:
//
//	Percentile: thresholds are the p-th percentiles of the county means.
//	            Rules run in order (High Chronic, High Acute, Double
//	            Jeopardy) and the last match wins, so a county above both
//	            thresholds ends as Double Jeopardy and one above only the
//	            acute threshold ends as High Acute.
//	Mean:       thresholds are the sample means of the min-max normalized
//	            scores (vulnerability = chronic, hazard = acute). The rules
//	            are mutually exclusive but are evaluated in the same
//	            ordered way.
//
// See [ClassifyByPercentile] and [ClassifyByMean].
package domain

// Package files manages the local download cache used when a source
// workbook is fetched over HTTP.
//
// Example usage:
//
//	cache := files.NewManager(paths.CacheDir, logger)
//	if cache.FileExists(files.CacheKey(url)) {
//	    data, err := cache.ReadFile(files.CacheKey(url))
//	}
package files

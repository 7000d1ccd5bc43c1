// Package pypi provides an HTTP client for the Python Package Index API.
//
// # Overview
//
// This package fetches package metadata from PyPI (https://pypi.org), the
// official repository for Python packages. The download flow itself goes
// through pip; this client exists so that a requirements file can be
// verified against the index before committing to a long download run.
//
// # Usage
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//
//	pkg, err := client.FetchPackage(ctx, "fastapi", false)  // false = use cache
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(pkg.Name, pkg.Version)
//
// # Caching
//
// Responses are cached through a pluggable [cache.Cache] backend to
// reduce load on PyPI and speed up repeated requests. Pass refresh=true
// to [Client.FetchPackage] to bypass the cache.
//
// Package names are normalized following PEP 503 before lookup, so any
// spelling PyPI accepts is accepted here.
package pypi

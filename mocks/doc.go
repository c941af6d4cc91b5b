package mocks

//go:generate mockgen -destination=storage_mock.go -package=mocks github.com/pribylovaa/go-portfolio-showcase/internal/storage ContactStorage
//go:generate mockgen -destination=cache_mock.go -package=mocks github.com/pribylovaa/go-portfolio-showcase/internal/cache RateLimiter

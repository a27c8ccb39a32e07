package graph

import "errors"

// ErrUnidentifiedArticle is returned when an article carries neither a
// pubmed id nor a doi, leaving nothing to key the node on.
var ErrUnidentifiedArticle = errors.New("article has no usable identifier")

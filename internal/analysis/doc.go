// Package analysis turns recent samples into behavioural insight.
//
// Cluster groups the last 30 samples into 3 behaviour patterns using
// z-normalised {cpu, memory, disk_read} features and k-means. Labels are
// matched against the previous pass so a given colour keeps meaning the
// same regime from one tick to the next.
//
// Recommend produces plain-language advisories from mean CPU and memory
// usage over the whole retained history.
package analysis

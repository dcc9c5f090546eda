// Package file persists DocuFlow settings as TOML under ~/.docuflow.
package file

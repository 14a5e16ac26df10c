package models

// DataBlob is one durable key-value entry. Collections are stored as JSON
// blobs, one key per collection.
type DataBlob struct {
	ID    string `gorm:"primaryKey"`
	Value []byte
}

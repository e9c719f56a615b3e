//go:build !darwin && !linux

package eventstore

func detectFilesystemType(string) (string, error) {
	return "", errDetectUnsupported
}

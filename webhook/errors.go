package webhook

import "errors"

var (
	ErrConfiguration               = errors.New("webhook verifier misconfigured")
	ErrSignatureVerificationFailed = errors.New("webhook signature verification failed")
	ErrInvalidPayload              = errors.New("invalid webhook payload")
	ErrUnclassifiableEvent         = errors.New("webhook payload has neither name nor type")
)

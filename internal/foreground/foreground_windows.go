package foreground

type unsupportedProvider struct{}

func newProvider() Provider {
	return unsupportedProvider{}
}

func (unsupportedProvider) Foreground() (Sample, error) {
	return Sample{}, ErrUnsupported
}

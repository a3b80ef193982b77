package readtags

const Version = "0.2"

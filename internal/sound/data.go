package sound

// Built-in sounds, embedded as WAV data URIs.
const (
	// Sunrise is the "Sunrise" tone.
	Sunrise = "data:audio/wav;base64,UklGRjIAAABXQVZFZm10IBAAAAABAAEARKwAAESsAAACABAAZGF0YVi0AAAAAQABAAYABwAJAAsADgAQABIAFAAWABgAGgAcAB4AIAAiACQAJgAoACoALAAsAC4AMAAyADQANgA4ADoAPAA+AEAAQgBEAEgASgBNAE4AUQBSAFUAVwBZAFwAXgBgAGIAZABnAGkAbABuAHAAcwB1AHcAegB8AH8AgQCCAIQAhwCJAIwAjgCRAJMAlQCWgJgAmgCcAJ8AogCjAKUApwCpAKsArACuALIAtAC2ALgAugC8AL4AwADCAMQAxADFAMgAywDNANAA0gDUANYA2ADZANwA3gDfAOIA5ADlAOcA6ADpAOwA7gDvAPIA9QD3APgA+gD8AP8BAwEGAQkBCwEIAQcBBQECAQABCgENAQ8BEQETARQBFQEUAREADwENAQoBBwEEAQIBAA=="
	// Uplift is the "Uplift" tone.
	Uplift = "data:audio/wav;base64,UklGRlIAAABXQVZFZm10IBAAAAABAAEARKwAAESsAAACABAAZGF0YUyQAAAAAgADAAUABwAJABEAGQAhACgALgA4AEMATQBkAHYAgwCTAKgAtgDRAMMA9gElAT0BlAG4AdgBBgGGAeYCAgS2Bq4IEgr2DqYRAhQIGPoehCUOK/wz5Dm8QIhFvEisTTxQaFC4XNBh4Ggcb/h0oH+gg4iH4Iu4jHiR4JMAmBifUKKspYynUKvgr8iwyLQgt9C6kLzowFDA+MTAxWzJvM4Qz/DTBNR02YDZ4Nx44fDkSOis6qDs0PAc9FT16PjM/ZUA0QZJDU0UxR1VJnUwyTzNQ+1HCVLFWWVeEWb5dlF69X7xg6mI/Y6JkBmWmZzNojmm8bG5ur3E+cq901XYLePh9CX7tfw6BG4MvhH+JZItDjF+Pp5HolvSc/qHEpYOoCqfsqiSrhKz+r/SxwLTMty26LL6CwszFvsnMy/7QedUo2a/eHOA35cznN+2B8s73Kvwz/esA4wVfCPsNNxTJGv4fNSYjLLstBDJ2PmJCb0dWS4ZPY1AzWWFivmRyaYVvMnYAfh6EM4h4jmqS/JqInxih0KXkqeSt+7O8vf7ExMv20lrZx95f4gblP+wz8Pf2vvyw/soAKwUrC0wQTxdaH2sl8TPmO8JDp0v+UW1WW2VnaEhtR3Q0fgaC5If2lUOcBKQwpnqt5LDts/S9ysL0yfbT8NnS3kffg+PT5gPpiuy57zHzy/aE/Mv/4wJ3BzcRExkWHiYjLC82OkpAZkpJTlNXXWR5a3R5d2h9eoCDg4qKk5SVl5qcnaGoq66wsrS3ury+v8HDxMbHyMnLzM7P0NHS09TV1tjc3d7f4OHj5OXm5+jp6uvs7e7v8PHy8/T19vf4+fr7/P3+/w="
	// DigitalPulse is the "Digital Pulse" tone.
	DigitalPulse = "data:audio/wav;base64,UklGRiQAAABXQVZFZm10IBAAAAABAAEARKwAAESsAAACABAAZGF0YQAAAAA/wD/AP8A/wA=="
	// ZenBells is the "Zen Bells" tone.
	ZenBells = "data:audio/wav;base64,UklGRqgAAABXQVZFZm10IBAAAAABAAEARKwAAESsAAACABAAZGF0YZQAAAD4APT/8v/s/+b/4//d/9n/0//O/8r/xv/C/73/u/+0/6//pP+f/5j/iv+C/3r/cv9t/2T/Wv9Q/0n/Q/88/zH/Kv8j/x7/Fv8T/w3/Bv8C/+7/6v/n/+H/3f/Z/9T/0P/N/8n/xf/B/73/uf+z/6//pf+g/5b/jP+F/37/d/9t/2X/Xf9U/0z/R/8+/zL/KwAjACYAIQAcABcAEwAQAA0ACAADAP8A/AD7AO0A5gDhALYAsQBvAGgAYQBXAE8ASgBEAD0ANgAqACQAHAAVABAAAwD/APwA+ADtAOUA4gDbALYAsgBwAGoAYgBYAFMAUgBHAEQAOgAvACgAIgAaABUAEAAOAAkABgADAP8A/AD6APQA8gDpAOMA2wBrAF8AUgBLAEIAOQAsACQAHgAZABIAEQANAAcAAgD/APgA6gDdAGsAWQBOAEUAPAAyACgAIgAbABcAEhEQDgAKAAgABgACAP8A+QDwAOYA0ABwAFkATgBFAD8ANgAyACsAJgAhABwAFwATABEADgAJAAcAAwD/APkA8QDmANAAcABZAE4ARQA/ADYAMgArACYAIQAcABcAEwARAA4ACQAHAA=="
)

package synapses_test

import (
	"fmt"

	"github.com/katalvlaran/synaptic/pairs"
	"github.com/katalvlaran/synaptic/predicate"
	"github.com/katalvlaran/synaptic/sampler"
	"github.com/katalvlaran/synaptic/synapses"
)

// ExampleBuilder_Connect connects every source neuron to every target neuron.
func ExampleBuilder_Connect() {
	b, err := synapses.New(3, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	stats, err := b.Connect(pairs.Population{Count: 3}, pairs.Population{Count: 2}, predicate.All())
	if err != nil {
		fmt.Println(err)
		return
	}
	pre, post, _ := b.EdgeValues()
	for k := range pre {
		fmt.Printf("%d: %d→%d\n", k, pre[k], post[k])
	}
	fmt.Println("created:", stats.Created)
	fmt.Println("target 1 receives:", b.PostSynapses(1))
	// Output:
	// 0: 0→0
	// 1: 0→1
	// 2: 1→0
	// 3: 1→1
	// 4: 2→0
	// 5: 2→1
	// created: 6
	// target 1 receives: [1 3 5]
}

// ExampleWithSampler shows probabilistic connection with a scripted sampler.
func ExampleWithSampler() {
	b, _ := synapses.New(3, 2, synapses.WithSampler(sampler.NewSequence(0.1, 0.6, 0.4, 0.9, 0.0, 0.5)))
	stats, _ := b.ConnectAll(predicate.Bernoulli(0.5))
	pre, post, _ := b.EdgeValues()
	fmt.Println(pre, post, stats.Rejected)
	// Output:
	// [0 1 2] [0 0 0] 3
}

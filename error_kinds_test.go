package objkit

import (
	"fmt"
	"sync"
	"testing"
)

func TestErrorKindFor_SameCode(t *testing.T) {
	a := ErrorKindFor("SameCodeTwice")
	b := ErrorKindFor("SameCodeTwice")
	if a != b {
		t.Errorf("expect same kind for same code, got %p != %p", a.k, b.k)
	}
	if e, a := "SameCodeTwice", a.Code(); e != a {
		t.Errorf("expect code %q, got %q", e, a)
	}
}

func TestErrorKindFor_DistinctCodes(t *testing.T) {
	a := ErrorKindFor("DistinctCodeA")
	b := ErrorKindFor("DistinctCodeB")
	if a == b {
		t.Errorf("expect distinct kinds for distinct codes")
	}
}

func TestErrorKindFor_ConcurrentFirstSighting(t *testing.T) {
	const n = 64
	code := fmt.Sprintf("ConcurrentCode%p", t)

	if _, ok := LookupErrorKind(code); ok {
		t.Fatalf("expect %q to be unseen", code)
	}

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		kinds = make([]ErrorKind, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			kinds[i] = ErrorKindFor(code)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < n; i++ {
		if kinds[0] != kinds[i] {
			t.Fatalf("expect one kind, got different kinds at 0 and %d", i)
		}
	}

	var count int
	for _, k := range ErrorKinds() {
		if k.Code() == code {
			count++
		}
	}
	if e, a := 1, count; e != a {
		t.Errorf("expect %d registry entry, got %d", e, a)
	}
}

func TestErrorKind_Zero(t *testing.T) {
	var k ErrorKind
	if !k.IsZero() {
		t.Errorf("expect zero kind")
	}
	if e, a := "", k.Code(); e != a {
		t.Errorf("expect empty code, got %q", a)
	}
	if KindNoSuchKey.IsZero() {
		t.Errorf("expect predeclared kind to be minted")
	}
}

func TestErrorKinds_Sorted(t *testing.T) {
	ErrorKindFor("zzzSortedLast")
	ErrorKindFor("AAASortedFirst")

	kinds := ErrorKinds()
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1].Code() > kinds[i].Code() {
			t.Fatalf("expect sorted kinds, %q before %q", kinds[i-1], kinds[i])
		}
	}
}

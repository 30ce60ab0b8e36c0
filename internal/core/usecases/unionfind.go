// internal/core/usecases/unionfind.go
package usecases

// unionFind es un union-find clásico con compresión de caminos sobre índices
// del arena de records. La convergencia del agrupado es estructural: no
// depende de cuántas pasadas se hagan.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

// find retorna la raíz del conjunto de x, comprimiendo el camino.
func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union cuelga el conjunto de b bajo la raíz del conjunto de a y retorna la
// raíz superviviente. La raíz de a sobrevive siempre: así el índice raíz de
// un grupo es el índice de input más antiguo de sus miembros.
func (u *unionFind) union(a, b int) int {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return ra
	}
	u.parent[rb] = ra
	return ra
}
